// Package loader reads network weights from a directory of bit-text files.
//
// File names follow the layer's weight stem:
//
//	<stem>_filter_16.txt   conv filters, (O, I, K, K) order
//	<stem>_bias_16.txt     conv biases, O values
//	<stem>_weights.pth.txt dense weights, (Out, In) order
//	<stem>_biases.pth.txt  dense biases, Out values
//
// Weights are transposed on load into the layouts the operators read:
// (K, K, I, O) for filters and (In, Out) for dense layers. Every file's
// element count is checked against the topology.
//
// Example:
//
//	w, err := loader.Load("weights/", topology.AlexNet())
//	if err != nil {
//	    log.Fatal(err)
//	}
package loader
