// Package serialization reads and writes the bit-text format used for every
// input, weight and stage file.
//
// Format Structure:
//
//	one value per line
//	each line: exactly 16 '0'/'1' characters, two's complement, MSB first
//	blank lines are ignored on read
//	writers terminate every line with '\n'
//
// Feature maps are stored channel planar: all of channel 0 row by row, then
// channel 1, and so on. Vectors are stored in index order.
//
// Example usage:
//
//	x, err := serialization.ReadTensorFile("input.txt", 227, 227, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := serialization.WriteTensorFile("out.txt", x); err != nil {
//	    log.Fatal(err)
//	}
package serialization
