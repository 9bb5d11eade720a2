package instance

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// raiseRequest asks the running instance to bring its window forward.
type raiseRequest struct {
	ID    string `cbor:"id"`
	Title string `cbor:"title"`
	PID   int    `cbor:"pid"`
}

// raiseReply answers a raiseRequest and echoes its ID. Raised is false
// when the running instance belongs to a different title.
type raiseReply struct {
	ID     string `cbor:"id"`
	Raised bool   `cbor:"raised"`
	PID    int    `cbor:"pid"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("instance: CBOR encoder initialization failed: " + err.Error())
	}
	// Unknown fields are ignored so older and newer builds can talk.
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("instance: CBOR decoder initialization failed: " + err.Error())
	}
}

func writeMessage(w io.Writer, v any) error {
	return encMode.NewEncoder(w).Encode(v)
}

func readMessage(r io.Reader, v any) error {
	return decMode.NewDecoder(r).Decode(v)
}
