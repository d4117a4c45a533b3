package jobspec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainLaunch = "sfd/launch/v1"
	DomainJob    = "sfd/job/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJoin encodes a list of strings into an unambiguous byte stream.
//
// Each element is NFC-normalized so visually identical unicode spellings hash
// identically, then length-prefixed so element boundaries cannot be forged by
// embedded separators.
func canonicalJoin(elems []string) []byte {
	var b strings.Builder
	for _, e := range elems {
		n := norm.NFC.String(e)
		fmt.Fprintf(&b, "%d:%s", len(n), n)
	}
	return []byte(b.String())
}

// LaunchID computes the content-addressed ID of a fully resolved launch.
//
// The ID is a pure function of (job name, script, final argv), so repeated
// launches of the identical command line share an ID. This is the determinism
// surface: two invocations with the same environment and arguments must
// produce the same LaunchID.
func LaunchID(jobName, script string, argv []string) string {
	elems := make([]string, 0, len(argv)+2)
	elems = append(elems, jobName, script)
	elems = append(elems, argv...)
	return hashWithDomain(DomainLaunch, canonicalJoin(elems))
}

// JobHash computes the content-addressed hash of a job definition.
// Used to detect catalog drift between a recorded run and the current specs.
func JobHash(job *Job) string {
	elems := make([]string, 0, 2+2*len(job.Args))
	elems = append(elems, job.Name, job.Script)
	for _, p := range job.Args {
		elems = append(elems, p.Flag, p.Value)
	}
	return hashWithDomain(DomainJob, canonicalJoin(elems))
}
