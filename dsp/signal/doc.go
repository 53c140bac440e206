// Package signal provides deterministic test and excitation signals.
//
// Block generators ([Generator]) produce whole slices for offline work and
// tests. Streaming sources ([WhiteNoise], [PinkNoise]) produce one sample
// per call without allocating and are what voices use for excitation.
package signal
