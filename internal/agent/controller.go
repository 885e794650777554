package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flemzord/walletclaw/internal/memory"
	"github.com/flemzord/walletclaw/internal/provider"
	"github.com/flemzord/walletclaw/internal/tool"
)

// Config holds the dependencies for a Controller.
type Config struct {
	Provider          provider.Provider
	Dialer            tool.Dialer
	Store             memory.Store
	Compressor        memory.Compressor
	SystemInstruction string
	Logger            *slog.Logger
}

// Controller orchestrates one user message into one reply. It is safe
// for concurrent use across users; the caller is responsible for
// serializing exchanges of the same user (see router lanes).
type Controller struct {
	provider          provider.Provider
	dialer            tool.Dialer
	store             memory.Store
	compressor        memory.Compressor
	systemInstruction string
	logger            *slog.Logger
	tracer            trace.Tracer
}

// NewController creates a Controller from the given configuration.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Provider == nil {
		return nil, errors.New("agent: provider is required")
	}
	if cfg.Dialer == nil {
		return nil, errors.New("agent: tool dialer is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("agent: conversation store is required")
	}
	if cfg.Compressor == nil {
		return nil, errors.New("agent: compressor is required")
	}
	if cfg.SystemInstruction == "" {
		cfg.SystemInstruction = DefaultSystemInstruction
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller{
		provider:          cfg.Provider,
		dialer:            cfg.Dialer,
		store:             cfg.Store,
		compressor:        cfg.Compressor,
		systemInstruction: cfg.SystemInstruction,
		logger:            cfg.Logger,
		tracer:            otel.Tracer("walletclaw/agent"),
	}, nil
}

// exchange carries the working data of one in-flight exchange between
// state handlers.
type exchange struct {
	req        Request
	userTurn   provider.Turn
	prompt     []provider.Turn
	decls      []provider.ToolDeclaration
	session    tool.Session
	first      provider.GenerateResponse
	call       *provider.FunctionCall
	resultTurn provider.Turn
	final      provider.GenerateResponse
	toolCalled bool
	reply      string
	usage      provider.Usage
	compressed bool
	err        error
}

// HandleMessage runs the exchange state machine for one user message.
// On failure the error carries a typed sentinel (ErrModelContact,
// tool.ErrUnavailable) and history is left exactly as it was: appends
// happen only after both model calls succeeded.
func (c *Controller) HandleMessage(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "agent.exchange",
		trace.WithAttributes(attribute.String("user.id", req.UserID)),
	)
	defer span.End()

	ex := &exchange{req: req}
	defer func() {
		if ex.session != nil {
			if err := ex.session.Close(); err != nil {
				c.logger.Warn("tool session close failed", "error", err)
			}
		}
	}()

	for st := stateStart; ; {
		switch st {
		case stateStart:
			st = c.stepStart(ctx, ex)
		case stateFirstModelCall:
			st = c.stepFirstModelCall(ctx, ex)
		case stateDecide:
			st = c.stepDecide(ex)
		case stateToolCall:
			st = c.stepToolCall(ctx, ex)
		case stateSecondModelCall:
			st = c.stepSecondModelCall(ctx, ex)
		case stateReply:
			st = c.stepReply(ex)
		case stateHistoryUpdate:
			st = c.stepHistoryUpdate(ex)
		case stateCompressionCheck:
			st = c.stepCompressionCheck(ctx, ex)
		case stateDone:
			exchangesTotal.WithLabelValues("ok").Inc()
			exchangeDuration.Observe(time.Since(start).Seconds())
			span.SetAttributes(
				attribute.Bool("exchange.tool_called", ex.toolCalled),
				attribute.Bool("exchange.compressed", ex.compressed),
				attribute.Int("exchange.tokens", ex.usage.TotalTokens),
			)
			result := Result{
				Reply:      ex.reply,
				ToolCalled: ex.toolCalled,
				Usage:      ex.usage,
				Compressed: ex.compressed,
			}
			if ex.call != nil {
				result.ToolName = ex.call.Name
			}
			return result, nil
		case stateFailed:
			exchangesTotal.WithLabelValues("error").Inc()
			exchangeDuration.Observe(time.Since(start).Seconds())
			span.RecordError(ex.err)
			span.SetStatus(codes.Error, ex.err.Error())
			return Result{}, ex.err
		}
	}
}

// stepStart reads the history, connects a fresh tool session, and builds
// the prompt. A tool session is acquired per exchange: the tool list may
// change between subprocess runs, so descriptors are never cached.
func (c *Controller) stepStart(ctx context.Context, ex *exchange) state {
	history, err := c.store.GetOrCreate(ex.req.UserID)
	if err != nil {
		ex.err = fmt.Errorf("agent: reading history: %w", err)
		return stateFailed
	}

	session, err := c.dialer.Connect(ctx)
	if err != nil {
		ex.err = err
		return stateFailed
	}
	ex.session = session
	ex.decls = tool.Declarations(session.Tools())

	ex.userTurn = provider.UserText(ex.req.Text)
	ex.prompt = append(history, ex.userTurn)
	return stateFirstModelCall
}

func (c *Controller) stepFirstModelCall(ctx context.Context, ex *exchange) state {
	resp, err := c.generate(ctx, ex, "agent.model_call.first")
	if err != nil {
		ex.err = fmt.Errorf("%w: %w", ErrModelContact, err)
		return stateFailed
	}
	ex.first = resp
	return stateDecide
}

// stepDecide inspects the first candidate's first content part. A
// function call starts the tool round; anything else (including absent
// or malformed content) is treated as a direct reply.
func (c *Controller) stepDecide(ex *exchange) state {
	if ex.call = ex.first.Content.FunctionCall(); ex.call != nil {
		return stateToolCall
	}
	return stateReply
}

// stepToolCall executes exactly one tool invocation and folds the result
// into the prompt for the follow-up model call.
func (c *Controller) stepToolCall(ctx context.Context, ex *exchange) state {
	if ex.req.Typing != nil {
		ex.req.Typing(ctx)
	}

	c.logger.Info("calling tool",
		"user", ex.req.UserID,
		"tool", ex.call.Name,
	)
	_, span := c.tracer.Start(ctx, "agent.tool_call",
		trace.WithAttributes(attribute.String("tool.name", ex.call.Name)),
	)
	result, err := ex.session.Call(ctx, ex.call.Name, ex.call.Args)
	span.End()
	if err != nil {
		ex.err = fmt.Errorf("agent: tool %q: %w", ex.call.Name, err)
		return stateFailed
	}
	if result == "" {
		result = noResultLiteral
	}
	toolCallsTotal.Inc()

	ex.resultTurn = provider.FunctionResultTurn(ex.call.Name, result)
	ex.prompt = append(ex.prompt, ex.first.Content, ex.resultTurn)
	ex.toolCalled = true
	return stateSecondModelCall
}

// stepSecondModelCall issues the follow-up call with the tool result in
// the prompt. Tools stay declared, but a further tool-call request is
// not processed: only its text, if any, is used.
func (c *Controller) stepSecondModelCall(ctx context.Context, ex *exchange) state {
	resp, err := c.generate(ctx, ex, "agent.model_call.second")
	if err != nil {
		ex.err = fmt.Errorf("%w: %w", ErrModelContact, err)
		return stateFailed
	}
	ex.final = resp
	return stateReply
}

// stepReply extracts the reply text and the usage signal from whichever
// model call produced the final response.
func (c *Controller) stepReply(ex *exchange) state {
	last := ex.first
	if ex.toolCalled {
		last = ex.final
	}
	ex.reply = last.Content.Text()
	if ex.reply == "" {
		ex.reply = fallbackReply
	}
	ex.usage = last.Usage
	tokensReportedTotal.Add(float64(last.Usage.TotalTokens))
	return stateHistoryUpdate
}

// stepHistoryUpdate appends the exchange's turns in order: the user
// turn, the first call's content (tool-call turn when a tool round
// happened), the tool-result turn, and the final content. The extension
// is 2 or 4 turns and always ends on a model turn.
func (c *Controller) stepHistoryUpdate(ex *exchange) state {
	turns := []provider.Turn{ex.userTurn}
	if ex.toolCalled {
		turns = append(turns,
			asModelTurn(ex.first.Content, ex.reply),
			ex.resultTurn,
			asModelTurn(ex.final.Content, ex.reply),
		)
	} else {
		turns = append(turns, asModelTurn(ex.first.Content, ex.reply))
	}

	if err := c.store.Append(ex.req.UserID, turns...); err != nil {
		ex.err = fmt.Errorf("agent: appending history: %w", err)
		return stateFailed
	}
	return stateCompressionCheck
}

// stepCompressionCheck hands the usage signal to the compressor. A
// compressor failure is recovered locally: the exchange still completes
// with the reply produced above.
func (c *Controller) stepCompressionCheck(ctx context.Context, ex *exchange) state {
	compressed, err := c.compressor.Compress(ctx, ex.req.UserID, ex.usage.TotalTokens)
	if err != nil {
		c.logger.Warn("compression check failed",
			"user", ex.req.UserID,
			"error", err,
		)
		return stateDone
	}
	if compressed {
		ex.compressed = true
		ex.reply += "\n\n" + compressionNotice
		compressionsTotal.Inc()
	}
	return stateDone
}

func (c *Controller) generate(ctx context.Context, ex *exchange, spanName string) (provider.GenerateResponse, error) {
	ctx, span := c.tracer.Start(ctx, spanName)
	defer span.End()

	modelCallsTotal.Inc()
	return c.provider.Generate(ctx, provider.GenerateRequest{
		Contents:          ex.prompt,
		Tools:             ex.decls,
		SystemInstruction: c.systemInstruction,
	})
}

// asModelTurn normalizes a response content turn for history: a turn
// with no parts is replaced by a plain-text model turn carrying the
// reply text, so histories never hold empty turns and always alternate.
func asModelTurn(t provider.Turn, fallback string) provider.Turn {
	if len(t.Parts) == 0 {
		return provider.ModelText(fallback)
	}
	t.Role = provider.RoleModel
	return t
}
