package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusByte(t *testing.T) {
	assert.Equal(t, byte(0xB0), StatusByte(StatusControlChange, 1))
	assert.Equal(t, byte(0xBF), StatusByte(StatusControlChange, 16))
	assert.Equal(t, byte(0x93), StatusByte(StatusNoteOn, 4))
	assert.Equal(t, byte(0x80), StatusByte(StatusNoteOff, 0))
	assert.Equal(t, byte(0x8F), StatusByte(StatusNoteOff, 99))
}

func TestDataByte(t *testing.T) {
	assert.Equal(t, byte(0), DataByte(-5))
	assert.Equal(t, byte(64), DataByte(64))
	assert.Equal(t, byte(127), DataByte(300))
}

func TestMidiMessages(t *testing.T) {
	assert.Equal(t, []byte{0xB2, 7, 127}, MidiCC{Channel: 3, CC: 7}.Message())

	n := MidiNote{Channel: 10, Note: 36, Mode: NoteTap, DurationMs: 100}
	assert.Equal(t, []byte{0x99, 36, 127}, n.NoteOn())
	assert.Equal(t, []byte{0x89, 36, 0}, n.NoteOff())
}
