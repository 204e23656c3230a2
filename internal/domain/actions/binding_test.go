package actions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBinding_Single(t *testing.T) {
	b := NormalizeBinding(decode(t, `{"kind":"single","action":{"type":"switchPage","pageId":"page2"}}`))
	require.NotNil(t, b)
	assert.Equal(t, KindSingle, b.Kind)
	assert.Equal(t, SwitchPage{PageID: "page2"}, b.Action)

	assert.Nil(t, NormalizeBinding(decode(t, `{"kind":"single","action":{"type":"bogus"}}`)))
	assert.Nil(t, NormalizeBinding(decode(t, `{"kind":"single"}`)))
	assert.Nil(t, NormalizeBinding(decode(t, `{"kind":"chord"}`)))
	assert.Nil(t, NormalizeBinding(nil))
}

func TestNormalizeBinding_MacroPartialAcceptance(t *testing.T) {
	b := NormalizeBinding(decode(t, `{"kind":"macro","steps":[
		{"type":"hotkey","keys":"ctrl+c"},
		{"type":"bogus"},
		{"type":"delay","ms":50}
	]}`))
	require.NotNil(t, b)
	assert.Equal(t, KindMacro, b.Kind)
	assert.Equal(t, []Action{Hotkey{Keys: "ctrl+c"}, Delay{Ms: 50}}, b.Steps)
}

func TestNormalizeBinding_EmptyMacroIsValid(t *testing.T) {
	b := NormalizeBinding(decode(t, `{"kind":"macro","steps":[{"type":"openUrl","url":"javascript:x"}]}`))
	require.NotNil(t, b)
	assert.Empty(t, b.Steps)
	assert.Empty(t, b.Actions())

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"macro","steps":[]}`, string(data))
}

func TestBinding_JSONRoundTrip(t *testing.T) {
	b := NewMacro(Hotkey{Keys: "ctrl+v"}, OpenApp{Target: "obs", Args: []string{"--x"}}, Back{})

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded Binding
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *b, decoded)
}

func TestBinding_UnmarshalRejected(t *testing.T) {
	var b Binding
	err := json.Unmarshal([]byte(`{"kind":"single","action":{"type":"openUrl","url":"ftp://x"}}`), &b)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestBinding_Actions(t *testing.T) {
	var nilBinding *Binding
	assert.Nil(t, nilBinding.Actions())
	assert.Equal(t, []Action{Back{}}, NewSingle(Back{}).Actions())
}

func TestBinding_CloneIsDeep(t *testing.T) {
	b := NewSingle(OpenApp{Target: "x", Args: []string{"a"}})
	cp := b.Clone()
	cp.Action.(OpenApp).Args[0] = "z"
	assert.Equal(t, "a", b.Action.(OpenApp).Args[0])
	assert.Nil(t, (*Binding)(nil).Clone())
}
