package actions

// MIDI status bytes for channel 1. The channel number is added to the low
// nibble.
const (
	StatusNoteOff       byte = 0x80
	StatusNoteOn        byte = 0x90
	StatusControlChange byte = 0xB0
)

// Values sent with a press. A CC press sends full scale and a note is
// struck at full velocity.
const (
	CCPressValue = 127
	NoteVelocity = 127
)

// StatusByte returns base + (channel-1), with channel clamped to 1-16.
func StatusByte(base byte, channel int) byte {
	channel = max(MinChannel, min(MaxChannel, channel))
	return base + byte(channel-1)
}

// DataByte clamps v into the 7-bit MIDI data range.
func DataByte(v int) byte {
	return byte(max(MinDataByte, min(MaxDataByte, v)))
}

// Message returns the control change message for a press.
func (a MidiCC) Message() []byte {
	return []byte{StatusByte(StatusControlChange, a.Channel), DataByte(a.CC), DataByte(CCPressValue)}
}

// NoteOn returns the note on message.
func (a MidiNote) NoteOn() []byte {
	return []byte{StatusByte(StatusNoteOn, a.Channel), DataByte(a.Note), DataByte(NoteVelocity)}
}

// NoteOff returns the note off message.
func (a MidiNote) NoteOff() []byte {
	return []byte{StatusByte(StatusNoteOff, a.Channel), DataByte(a.Note), 0}
}
