package labels

import (
	"encoding/json"
	"fmt"
)

// Label is a class label in a request payload.
//
// Clients send labels as JSON strings or numbers; both map to their literal
// text so that 1, 1.0 and "1" behave the way the client wrote them.
type Label string

func (l *Label) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = Label(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("label should be a string or a number: %s", string(b))
	}
	*l = Label(n.String())
	return nil
}

func (l Label) String() string {
	return string(l)
}

// AsStrings flattens a label vector for the analytics layer.
func AsStrings(ls []Label) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = string(l)
	}
	return out
}

// AsStringSets flattens a vector of label sets.
func AsStringSets(lss [][]Label) [][]string {
	out := make([][]string, len(lss))
	for i, ls := range lss {
		out[i] = AsStrings(ls)
	}
	return out
}
