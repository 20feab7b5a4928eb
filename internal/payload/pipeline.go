// Package payload turns a pasted base64 label into bytes, a detected label
// format and a timestamped filename.
//
// Every function here is pure apart from the clock read, so a Pipeline may be
// shared across goroutines.
package payload

// Result is a decoded payload with its resolved format and output name.
type Result struct {
	Data      []byte `json:"-"`
	FileName  string `json:"file_name"`
	Extension string `json:"extension"`
	Format    Format `json:"format"`
}

// Size returns the payload length in bytes.
func (r Result) Size() int { return len(r.Data) }

// Pipeline runs Decode followed by Classify.
type Pipeline struct {
	Now Clock
}

// NewPipeline returns a Pipeline reading the system clock.
func NewPipeline() *Pipeline {
	return &Pipeline{Now: SystemClock}
}

// DecodeBase64 decodes input and classifies the bytes. Either all of Data,
// FileName and Extension are set or an error is returned.
func (p *Pipeline) DecodeBase64(input string) (Result, error) {
	data, err := Decode(input)
	if err != nil {
		return Result{}, err
	}

	now := SystemClock
	if p != nil && p.Now != nil {
		now = p.Now
	}

	f, name, err := Classify(data, now())
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:      data,
		FileName:  name,
		Extension: f.Extension(),
		Format:    f,
	}, nil
}

// DecodeBase64 runs the default pipeline.
func DecodeBase64(input string) (Result, error) {
	return NewPipeline().DecodeBase64(input)
}
