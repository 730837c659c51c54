// Package pin is the access facade that typed pin adapters call every frame.
//
// A Pin wraps the buffered stream of one connection and exposes:
//   - SetSliceCount / SliceCount, the logical length of the connection
//   - Get / Set, bounds-checked scalar access by slice index
//   - ReadView / WriteView, generation-checked bulk views over the storage
//   - Invalidate, which marks every outstanding view as stale
//
// Pins have a direction. Output and configuration pins own and mutate their
// stream. Input pins are read-only: they read either their own default
// stream, seeded by the host while unconnected, or the stream of the output
// they are connected to, borrowed and never copied.
//
// # Change detection
//
// Sync is called once per frame and reports whether the pin content changed
// since the previous frame. With a codec in the Config the pin compares
// xxHash64 fingerprints of the encoded slices, so rewriting identical values
// does not count as a change. Without a codec any length change, connection
// change, scalar write or issued write view counts.
//
//	out, _ := pin.NewOutput(pin.Config[float64]{Name: "Y", Codec: encoding.NewFloat64Codec(engine)})
//	in, _ := pin.NewInput(pin.Config[float64]{Name: "X"})
//	_ = in.Connect(out)
//
//	_ = out.SetSliceCount(3)
//	w, _ := out.WriteView()
//	_, _ = w.CopyFrom([]float64{1, 2, 3})
//	if in.Sync() {
//	    // recompute
//	}
//
// BinPin offers the same surface for bin buffers plus access to the live
// inner spreads.
//
// Pins are not safe for concurrent use.
package pin
