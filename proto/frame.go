package proto

// Frame is a fully received, framed packet: an id plus a boundary-bound
// Reader over its body, ready for phase dispatch.
type Frame struct {
	ID   int32
	Body *Reader
}

// ExtractFrame attempts to pull one complete (length, id, body) frame off
// the front of r. It returns ok=false when the buffered bytes don't yet
// contain a full frame (either the length varint itself is incomplete, or
// the declared body isn't fully buffered), in which case r is left
// untouched so the caller can Feed more bytes and retry.
func ExtractFrame(r *Reader) (frame *Frame, ok bool, err error) {
	length, lengthLen, have, err := r.TryPeekVarInt()
	if err != nil {
		return nil, false, err
	}
	if !have {
		return nil, false, nil
	}
	if r.Len() < lengthLen+int(length) {
		return nil, false, nil
	}

	r.consume(lengthLen)
	body, err := r.Read(int(length))
	if err != nil {
		return nil, false, err
	}

	bodyReader := NewReader(body)
	bodyReader.SetBoundary(len(body))
	id, err := bodyReader.VarInt()
	if err != nil {
		return nil, false, err
	}
	return &Frame{ID: id, Body: bodyReader}, true, nil
}
