// Package agc implements a look-ahead automatic gain control stage for
// software radio receive chains.
//
// The [Engine] rescales complex baseband or real audio toward a target level.
// Every input sample passes through a delay line whose length equals the
// attack time, so gain reductions are already in place when a loud sample
// reaches the output. The gain follows a small state machine:
//
//   - Attack: the window peak demands less gain; gain falls by a fixed
//     dB step per sample, fast enough to traverse the whole gain range within
//     the attack time.
//   - Hang: gain is frozen after an attack. The hold restarts while the
//     overload is still inside the look-ahead window and expires after the
//     hang time.
//   - Decay: gain rises by a smaller dB step derived from the decay time.
//   - Tracking: gain equals the demanded gain.
//   - Manual: AGC disabled, a fixed gain is applied.
//
// Configuration never fails: out-of-range values are clamped (see
// [Config.Sanitize]). Processing is allocation-free and safe to run
// concurrently with [Engine.SetParameters].
package agc
