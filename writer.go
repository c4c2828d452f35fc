package ijslog

/*********************************************************************************
io.Writer interface implementation

The LogClient implements io.Writer so it can be used with fmt.Fprintf and
other formatting helpers. The semantics are:
 - Lvl(level) sets the current level used by subsequent Write calls.
 - Write(p) emits the bytes at the currently set curLevel and returns
   len(p) whether or not the gates let the message through (a suppressed
   message is not a write error).

This allows patterns like:
  fmt.Fprintf(client.Lvl(LVL_WARN), "disk low: %d%%", percent)
*/

// Lvl sets the client's current level (used by Write/fmt.Fprintf) and
// returns the same client for convenient chaining.
func (lc *LogClient) Lvl(level LogLevel) *LogClient {
	lc.curLevel = normLevel(level)
	return lc
}

// Write implements io.Writer. It forwards the provided bytes as a log
// message at the client's curLevel. A nil or empty payload is treated as a
// zero-length write with no error.
func (lc *LogClient) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	lc.emit(lc.curLevel, string(p), "", 0)
	return len(p), nil
}
