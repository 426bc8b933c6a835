// internal/device/encode.go
package device

import (
	"strconv"
	"strings"

	"feeder-service/internal/model"
)

// Frame layout is the Asycube ASCII protocol: a command body wrapped in
// braces and terminated with CRLF. The stored vibration set is written with
// SC<channel>=(v1;v2;...;vn) and triggered with C<channel>.
const frameTerminator = "\r\n"

// EncodeSet frames the flattened parameter sequence as a stored-command
// write for the given vibration channel.
func EncodeSet(channel string, wire model.WireCommand) []byte {
	values := make([]string, len(wire))
	for i, v := range wire {
		values[i] = strconv.Itoa(v)
	}

	var b strings.Builder
	b.WriteString("{SC")
	b.WriteString(channel)
	b.WriteString("=(")
	b.WriteString(strings.Join(values, ";"))
	b.WriteString(")}")
	b.WriteString(frameTerminator)
	return []byte(b.String())
}

// EncodeExecute frames the execute command that triggers the stored
// vibration set.
func EncodeExecute(channel string) []byte {
	return []byte("{C" + channel + "}" + frameTerminator)
}
