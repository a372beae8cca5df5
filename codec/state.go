package codec

// decodeState enumerates the phases of the incremental decoder, shared by
// RequestDecoder and ResponseDecoder via decoderCore. Transitions only ever
// move forward except the chunked-body loop (stateBodyChunkCRLF back to
// stateBodyChunkSize) and reset(), which snaps back to stateIdle — this keeps
// the state machine a single sum type with no cyclic references, per the
// "state machine over callbacks" design note.
type decodeState int

const (
	stateIdle decodeState = iota
	stateStartLine
	stateHeaders
	stateBodyLength
	stateBodyChunkSize
	stateBodyChunkData
	stateBodyChunkCRLF
	stateBodyTrailer
	stateBodyUntilClose
	stateDone
	stateFailed
)
