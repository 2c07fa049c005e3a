// Package fixed implements the Q3.13 fixed-point arithmetic of the accelerator.
//
// A Value is a 16-bit two's-complement integer holding x·2^13, giving a
// representable range of [-4.0, 4.0 - 2^-13] with a resolution of 2^-13.
//
// The package provides:
//   - Codec: float64 ⇄ Value and 16-character bit string ⇄ Value
//   - Multipliers: the accelerator's bit-selection rule (MulBitSelect) and the
//     legacy shift-and-wrap rule (MulShift)
//   - Narrowing: Saturate and Wrap for wide accumulators
//   - Policy: the multiply/accumulate/dense strategy bundle chosen once per run
//
// None of the arithmetic in this package returns an error. Saturation and
// truncation are defined behavior, not failures.
package fixed
