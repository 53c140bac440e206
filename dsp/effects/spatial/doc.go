// Package spatial provides reusable non-I/O spatial audio processors.
//
// Included processors:
//   - Panner: Constant-power mono-to-stereo placement.
package spatial
