// Package jobspec defines the training-job catalog and its CUE loading.
//
// A job spec names a Python training script and the fixed flag/value pairs it
// receives: experiment name, project, pretrained-artifact reference, dataset
// paths, rank depth, and scheduler resource requests. Specs are written in CUE
// and validated at load time; the launcher consumes the decoded Job values and
// never re-parses anything at launch time.
//
// Identity:
//   - LaunchID: content-addressed hash of (job, script, final argv). Identical
//     environment + arguments always hash to the same ID.
//   - JobHash: hash of the definition itself, recorded with each run so catalog
//     drift is detectable afterwards.
//
// All canonical encodings are NFC-normalized and length-prefixed before
// hashing, with domain-separated SHA-256.
package jobspec
