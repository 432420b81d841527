package services

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// Signature computes the content signature over a document's relevant
// content fields plus the active processing parameters. Both maps are
// serialised with canonical key ordering (encoding/json sorts map keys)
// so identical logical content always hashes identically regardless of
// in-memory insertion order.
//
// The digest is md5: 128 bits, non-cryptographic use, collision risk
// accepted. Pure function, no I/O.
func Signature(content map[string]any, params map[string]any) string {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		// Maps of JSON-safe values cannot fail to marshal; fall back
		// to the fmt rendering rather than silently hashing nothing.
		contentJSON = []byte(fmt.Sprintf("%v", content))
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		paramsJSON = []byte(fmt.Sprintf("%v", params))
	}

	sum := md5.Sum(append(contentJSON, paramsJSON...)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// ChunkSignature is the signature gating the chunk stage: the
// document's text and file type, folded with every chunking parameter.
// Changing any parameter changes every signature, forcing full
// reprocessing.
func ChunkSignature(doc *domain.DocumentRecord, settings domain.Settings) string {
	return Signature(
		map[string]any{
			"text":      doc.Text,
			"file_type": strings.ToLower(doc.FileType),
		},
		settings.ChunkParameters(),
	)
}

// TextHash is the sha256 hex digest of extracted text, used as the
// classify stage's freshness key and as DocumentRecord.ContentHash.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
