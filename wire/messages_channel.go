package wire

func init() {
	registerMessage(MsgOpenChannel, func() Message { return new(OpenChannel) })
	registerMessage(MsgAcceptChannel, func() Message { return new(AcceptChannel) })
	registerMessage(MsgFundingCreated, func() Message { return new(FundingCreated) })
	registerMessage(MsgFundingSigned, func() Message { return new(FundingSigned) })
	registerMessage(MsgFundingLocked, func() Message { return new(FundingLocked) })
	registerMessage(MsgShutdown, func() Message { return new(Shutdown) })
	registerMessage(MsgClosingSigned, func() Message { return new(ClosingSigned) })
}

// OpenChannel proposes a new channel funded by the sender.
type OpenChannel struct {
	ChainHash               ChainHash
	TemporaryChannelID      ChannelID
	FundingSatoshis         uint64
	PushMsat                MilliSatoshi
	DustLimitSatoshis       uint64
	MaxHtlcValueInFlight    MilliSatoshi
	ChannelReserveSatoshis  uint64
	HtlcMinimumMsat         MilliSatoshi
	FeeratePerKw            uint32
	ToSelfDelay             uint16
	MaxAcceptedHtlcs        uint16
	FundingPubKey           PubKey
	RevocationBasepoint     PubKey
	PaymentBasepoint        PubKey
	DelayedPaymentBasepoint PubKey
	HtlcBasepoint           PubKey
	FirstPerCommitmentPoint PubKey
	ChannelFlags            byte
}

func (m *OpenChannel) MsgType() MessageType { return MsgOpenChannel }

func (m *OpenChannel) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChainHash = ChainHash(b)
	if b, err = r.bytes32(); err != nil {
		return err
	}
	m.TemporaryChannelID = ChannelID(b)
	if m.FundingSatoshis, err = r.u64(); err != nil {
		return err
	}
	v, err := r.u64()
	if err != nil {
		return err
	}
	m.PushMsat = MilliSatoshi(v)
	if m.DustLimitSatoshis, err = r.u64(); err != nil {
		return err
	}
	if v, err = r.u64(); err != nil {
		return err
	}
	m.MaxHtlcValueInFlight = MilliSatoshi(v)
	if m.ChannelReserveSatoshis, err = r.u64(); err != nil {
		return err
	}
	if v, err = r.u64(); err != nil {
		return err
	}
	m.HtlcMinimumMsat = MilliSatoshi(v)
	if m.FeeratePerKw, err = r.u32(); err != nil {
		return err
	}
	if m.ToSelfDelay, err = r.u16(); err != nil {
		return err
	}
	if m.MaxAcceptedHtlcs, err = r.u16(); err != nil {
		return err
	}
	if m.FundingPubKey, err = r.pubKey(); err != nil {
		return err
	}
	if m.RevocationBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.PaymentBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.DelayedPaymentBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.HtlcBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.FirstPerCommitmentPoint, err = r.pubKey(); err != nil {
		return err
	}
	m.ChannelFlags, err = r.u8()
	return err
}

func (m *OpenChannel) encode(w *writer) error {
	w.bytes(m.ChainHash[:])
	w.bytes(m.TemporaryChannelID[:])
	w.u64(m.FundingSatoshis)
	w.u64(uint64(m.PushMsat))
	w.u64(m.DustLimitSatoshis)
	w.u64(uint64(m.MaxHtlcValueInFlight))
	w.u64(m.ChannelReserveSatoshis)
	w.u64(uint64(m.HtlcMinimumMsat))
	w.u32(m.FeeratePerKw)
	w.u16(m.ToSelfDelay)
	w.u16(m.MaxAcceptedHtlcs)
	w.pubKey(m.FundingPubKey)
	w.pubKey(m.RevocationBasepoint)
	w.pubKey(m.PaymentBasepoint)
	w.pubKey(m.DelayedPaymentBasepoint)
	w.pubKey(m.HtlcBasepoint)
	w.pubKey(m.FirstPerCommitmentPoint)
	w.u8(m.ChannelFlags)
	return nil
}

// AcceptChannel accepts an OpenChannel proposal with the receiver's own
// limits and basepoints.
type AcceptChannel struct {
	TemporaryChannelID      ChannelID
	DustLimitSatoshis       uint64
	MaxHtlcValueInFlight    MilliSatoshi
	ChannelReserveSatoshis  uint64
	HtlcMinimumMsat         MilliSatoshi
	MinimumDepth            uint32
	ToSelfDelay             uint16
	MaxAcceptedHtlcs        uint16
	FundingPubKey           PubKey
	RevocationBasepoint     PubKey
	PaymentBasepoint        PubKey
	DelayedPaymentBasepoint PubKey
	HtlcBasepoint           PubKey
	FirstPerCommitmentPoint PubKey
}

func (m *AcceptChannel) MsgType() MessageType { return MsgAcceptChannel }

func (m *AcceptChannel) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.TemporaryChannelID = ChannelID(b)
	if m.DustLimitSatoshis, err = r.u64(); err != nil {
		return err
	}
	v, err := r.u64()
	if err != nil {
		return err
	}
	m.MaxHtlcValueInFlight = MilliSatoshi(v)
	if m.ChannelReserveSatoshis, err = r.u64(); err != nil {
		return err
	}
	if v, err = r.u64(); err != nil {
		return err
	}
	m.HtlcMinimumMsat = MilliSatoshi(v)
	if m.MinimumDepth, err = r.u32(); err != nil {
		return err
	}
	if m.ToSelfDelay, err = r.u16(); err != nil {
		return err
	}
	if m.MaxAcceptedHtlcs, err = r.u16(); err != nil {
		return err
	}
	if m.FundingPubKey, err = r.pubKey(); err != nil {
		return err
	}
	if m.RevocationBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.PaymentBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.DelayedPaymentBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	if m.HtlcBasepoint, err = r.pubKey(); err != nil {
		return err
	}
	m.FirstPerCommitmentPoint, err = r.pubKey()
	return err
}

func (m *AcceptChannel) encode(w *writer) error {
	w.bytes(m.TemporaryChannelID[:])
	w.u64(m.DustLimitSatoshis)
	w.u64(uint64(m.MaxHtlcValueInFlight))
	w.u64(m.ChannelReserveSatoshis)
	w.u64(uint64(m.HtlcMinimumMsat))
	w.u32(m.MinimumDepth)
	w.u16(m.ToSelfDelay)
	w.u16(m.MaxAcceptedHtlcs)
	w.pubKey(m.FundingPubKey)
	w.pubKey(m.RevocationBasepoint)
	w.pubKey(m.PaymentBasepoint)
	w.pubKey(m.DelayedPaymentBasepoint)
	w.pubKey(m.HtlcBasepoint)
	w.pubKey(m.FirstPerCommitmentPoint)
	return nil
}

// FundingCreated delivers the funding outpoint and the funder's first
// commitment signature.
type FundingCreated struct {
	TemporaryChannelID ChannelID
	FundingTxid        Hash
	FundingOutputIndex uint16
	Signature          Sig
}

func (m *FundingCreated) MsgType() MessageType { return MsgFundingCreated }

func (m *FundingCreated) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.TemporaryChannelID = ChannelID(b)
	if b, err = r.bytes32(); err != nil {
		return err
	}
	m.FundingTxid = Hash(b)
	if m.FundingOutputIndex, err = r.u16(); err != nil {
		return err
	}
	m.Signature, err = r.sig()
	return err
}

func (m *FundingCreated) encode(w *writer) error {
	w.bytes(m.TemporaryChannelID[:])
	w.bytes(m.FundingTxid[:])
	w.u16(m.FundingOutputIndex)
	return w.sig(m.Signature)
}

// FundingSigned returns the fundee's first commitment signature, moving
// the channel to its permanent id.
type FundingSigned struct {
	ChannelID ChannelID
	Signature Sig
}

func (m *FundingSigned) MsgType() MessageType { return MsgFundingSigned }

func (m *FundingSigned) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	m.Signature, err = r.sig()
	return err
}

func (m *FundingSigned) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	return w.sig(m.Signature)
}

// FundingLocked announces the funding transaction reached its required
// depth and hands over the next commitment point.
type FundingLocked struct {
	ChannelID              ChannelID
	NextPerCommitmentPoint PubKey
}

func (m *FundingLocked) MsgType() MessageType { return MsgFundingLocked }

func (m *FundingLocked) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	m.NextPerCommitmentPoint, err = r.pubKey()
	return err
}

func (m *FundingLocked) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.pubKey(m.NextPerCommitmentPoint)
	return nil
}

// Shutdown starts a cooperative close, committing to a final script.
type Shutdown struct {
	ChannelID    ChannelID
	ScriptPubKey []byte
}

func (m *Shutdown) MsgType() MessageType { return MsgShutdown }

func (m *Shutdown) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	m.ScriptPubKey, err = r.varBytes()
	return err
}

func (m *Shutdown) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	return w.varBytes(m.ScriptPubKey)
}

// ClosingSigned negotiates the closing fee; signatures cover the closing
// transaction at the proposed fee.
type ClosingSigned struct {
	ChannelID   ChannelID
	FeeSatoshis uint64
	Signature   Sig
}

func (m *ClosingSigned) MsgType() MessageType { return MsgClosingSigned }

func (m *ClosingSigned) decode(r *reader) error {
	b, err := r.bytes32()
	if err != nil {
		return err
	}
	m.ChannelID = ChannelID(b)
	if m.FeeSatoshis, err = r.u64(); err != nil {
		return err
	}
	m.Signature, err = r.sig()
	return err
}

func (m *ClosingSigned) encode(w *writer) error {
	w.bytes(m.ChannelID[:])
	w.u64(m.FeeSatoshis)
	return w.sig(m.Signature)
}
