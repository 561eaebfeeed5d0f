package problem

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DomainProblem prefixes the content hash of a problem.
// The version suffix changes whenever the hashed form does.
const DomainProblem = "tacs/problem/v1"

// Hash returns a content hash of the problem's structure.
//
// Format: hex(SHA256(DomainProblem + 0x00 + json)), where json is the
// problem's JSON encoding with Threads cleared. Two documents that build
// the same system hash equal regardless of file format or thread count.
func (p *Problem) Hash() (string, error) {
	q := *p
	q.Threads = 0

	data, err := json.Marshal(&q)
	if err != nil {
		return "", fmt.Errorf("hash problem: %w", err)
	}
	return hashWithDomain(DomainProblem, data), nil
}

// hashWithDomain computes SHA-256 with domain separation. The null byte
// separator keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
