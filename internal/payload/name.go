package payload

import "time"

const fileTimeLayout = "20060102-15-04-05"

// Clock returns the current instant. Tests substitute a fixed clock.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// FileName builds YYYYMMDD-HH-MM-SS.<ext> from now truncated to whole seconds
// in UTC. Instants before the Unix epoch are clamped to the epoch.
func FileName(f Format, now time.Time) string {
	secs := now.Unix()
	if secs < 0 {
		secs = 0
	}
	return time.Unix(secs, 0).UTC().Format(fileTimeLayout) + "." + f.Extension()
}

// Classify resolves the format of data and names it for the instant now.
func Classify(data []byte, now time.Time) (Format, string, error) {
	f, err := Detect(data)
	if err != nil {
		return "", "", err
	}
	return f, FileName(f, now), nil
}
