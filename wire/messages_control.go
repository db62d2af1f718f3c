package wire

func init() {
	registerMessage(MsgInit, func() Message { return new(Init) })
	registerMessage(MsgError, func() Message { return new(Error) })
	registerMessage(MsgPing, func() Message { return new(Ping) })
	registerMessage(MsgPong, func() Message { return new(Pong) })
}

// Init is the first message of a connection, advertising feature bits.
type Init struct {
	GlobalFeatures []byte
	LocalFeatures  []byte
}

func (m *Init) MsgType() MessageType { return MsgInit }

func (m *Init) decode(r *reader) error {
	var err error
	if m.GlobalFeatures, err = r.varBytes(); err != nil {
		return err
	}
	m.LocalFeatures, err = r.varBytes()
	return err
}

func (m *Init) encode(w *writer) error {
	if err := w.varBytes(m.GlobalFeatures); err != nil {
		return err
	}
	return w.varBytes(m.LocalFeatures)
}

// Error reports a channel-scoped or connection-scoped (all-zero channel
// id) failure. Data is free-form and may hold a printable reason.
type Error struct {
	ChannelID ChannelID
	Data      []byte
}

func (m *Error) MsgType() MessageType { return MsgError }

func (m *Error) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	m.Data, err = r.varBytes()
	return err
}

func (m *Error) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	return w.varBytes(m.Data)
}

// Ping probes liveness and requests a pong of NumPongBytes. Ignored
// padding lets either side obscure traffic patterns.
type Ping struct {
	NumPongBytes uint16
	Ignored      []byte
}

func (m *Ping) MsgType() MessageType { return MsgPing }

func (m *Ping) decode(r *reader) error {
	var err error
	if m.NumPongBytes, err = r.u16(); err != nil {
		return err
	}
	m.Ignored, err = r.varBytes()
	return err
}

func (m *Ping) encode(w *writer) error {
	w.u16(m.NumPongBytes)
	return w.varBytes(m.Ignored)
}

// Pong answers a ping with the requested amount of ignored bytes.
type Pong struct {
	Ignored []byte
}

func (m *Pong) MsgType() MessageType { return MsgPong }

func (m *Pong) decode(r *reader) error {
	var err error
	m.Ignored, err = r.varBytes()
	return err
}

func (m *Pong) encode(w *writer) error {
	return w.varBytes(m.Ignored)
}
