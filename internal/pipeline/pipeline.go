// Package pipeline orchestrates the capture decoding workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/logicdecode/internal/annotation"
	"github.com/retroenv/logicdecode/internal/capture"
	"github.com/retroenv/logicdecode/internal/detector"
	"github.com/retroenv/logicdecode/internal/loader"
	"github.com/retroenv/logicdecode/internal/options"
	"github.com/retroenv/logicdecode/internal/protocol"
	"github.com/retroenv/logicdecode/internal/protocol/hd44780"
	"github.com/retroenv/logicdecode/internal/session"
	"github.com/retroenv/logicdecode/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete capture decoding workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new capture decoding pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete decoding pipeline and returns the number of
// emitted annotations. Cancellation is checked between stages; the decode
// loop itself runs to the end of the capture.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, decodeOpts options.Decode, output io.Writer) (int, error) {
	sess, err := session.LoadSidecar(opts.Session, opts.Input)
	if err != nil {
		return 0, fmt.Errorf("loading session: %w", err)
	}
	applySessionDefaults(&decodeOpts, sess)

	format := p.detector.Detect(opts)

	capt, err := p.loader.Load(opts, format, sess)
	if err != nil {
		return 0, fmt.Errorf("loading capture: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("decoding aborted: %w", err)
	}

	return p.ExecuteWithCapture(ctx, capt, opts, decodeOpts, output)
}

// ExecuteWithCapture runs the decoding pipeline with a pre-loaded capture.
// This is useful for testing and programmatic usage where the capture is
// already in memory.
func (p *Pipeline) ExecuteWithCapture(ctx context.Context, capt *capture.Capture, opts options.Program,
	decodeOpts options.Decode, output io.Writer) (int, error) {

	if decodeOpts.Mode == "" {
		decodeOpts.Mode = "8bit"
	}

	source, err := p.createSource(capt, opts)
	if err != nil {
		return 0, fmt.Errorf("creating sample source: %w", err)
	}

	sink, err := p.createSink(capt, opts, output)
	if err != nil {
		return 0, fmt.Errorf("creating annotation writer: %w", err)
	}

	decoder, err := p.createDecoder(decodeOpts)
	if err != nil {
		return 0, fmt.Errorf("creating decoder: %w", err)
	}

	p.printInfo(opts, decodeOpts, capt)

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("decoding aborted: %w", err)
	}

	if err := decoder.Run(source, sink); err != nil {
		return 0, fmt.Errorf("decoding capture: %w", err)
	}

	if closer, ok := sink.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return 0, fmt.Errorf("closing annotation writer: %w", err)
		}
	}

	// the written count excludes annotations suppressed by the class filter
	count := 0
	if counter, ok := sink.(annotationCounter); ok {
		count = counter.Count()
	}
	return count, nil
}

// annotationCounter is implemented by sinks that track how many annotations
// they wrote after class filtering.
type annotationCounter interface {
	Count() int
}

// createSource builds the sample source over the capture using the
// configured or default channel assignment.
func (p *Pipeline) createSource(capt *capture.Capture, opts options.Program) (protocol.SampleSource, error) {
	var assignment capture.Assignment
	if opts.Assign != "" {
		var err error
		assignment, err = capture.ParseAssignment(opts.Assign, capt)
		if err != nil {
			return nil, fmt.Errorf("parsing channel assignment: %w", err)
		}
	} else {
		assignment = capture.DefaultAssignment(len(capt.Channels))
	}

	source, err := capture.NewSource(capt, assignment)
	if err != nil {
		return nil, fmt.Errorf("creating capture source: %w", err)
	}
	return source, nil
}

// createSink builds the annotation writer selected by the output options.
func (p *Pipeline) createSink(capt *capture.Capture, opts options.Program, output io.Writer) (annotation.Sink, error) {
	classes, err := annotation.ParseClasses(opts.Classes)
	if err != nil {
		return nil, fmt.Errorf("parsing class filter: %w", err)
	}

	writerOpts := writer.Options{
		DecoderName: opts.Protocol,
		Width:       opts.Width,
		Samplerate:  capt.Samplerate,
		Time:        opts.Time,
		Color:       opts.Color == "always" || (opts.Color == "auto" && opts.Output == ""),
		Classes:     classes,
	}
	if writerOpts.Width == 0 && opts.Output == "" {
		writerOpts.Width = writer.DetectWidth()
	}

	if opts.CSVOut {
		sink, err := writer.NewCSV(output, writerOpts)
		if err != nil {
			return nil, fmt.Errorf("creating CSV writer: %w", err)
		}
		return sink, nil
	}
	return writer.NewText(output, writerOpts), nil
}

// createDecoder creates the protocol decoder selected by the options.
func (p *Pipeline) createDecoder(decodeOpts options.Decode) (protocol.Decoder, error) {
	switch decodeOpts.Protocol {
	case "hd44780":
		mode, err := hd44780.ParseMode(decodeOpts.Mode)
		if err != nil {
			return nil, fmt.Errorf("creating hd44780 decoder: %w", err)
		}
		return hd44780.New(p.logger, mode), nil
	default:
		return nil, fmt.Errorf("unsupported protocol '%s'", decodeOpts.Protocol)
	}
}

// applySessionDefaults resolves decoder settings that were not set on the
// command line: the session file setting wins over the built-in default.
func applySessionDefaults(decodeOpts *options.Decode, sess *session.Session) {
	if decodeOpts.Mode == "" {
		if sess != nil && sess.Mode != "" {
			decodeOpts.Mode = sess.Mode
		} else {
			decodeOpts.Mode = "8bit"
		}
	}
}

// printInfo prints information about the capture being processed.
func (p *Pipeline) printInfo(opts options.Program, decodeOpts options.Decode, capt *capture.Capture) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing logic capture",
		log.String("file", opts.Input),
		log.String("protocol", decodeOpts.Protocol),
		log.String("mode", decodeOpts.Mode),
		log.Int("channels", len(capt.Channels)),
		log.Int("samples", capt.Length()),
	)
}
