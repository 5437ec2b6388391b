package handler

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ZOO-Project/zoo-template-common/pkg/stac"
	"github.com/ZOO-Project/zoo-template-common/pkg/stacio"
	"github.com/ZOO-Project/zoo-template-common/pkg/logger"
	"github.com/ZOO-Project/zoo-template-common/pkg/types"
)

// Stage-out keys read from the additional_parameters section. Values
// absent from the configuration fall back to the process environment.
const (
	KeyStageOutServiceURL = "STAGEOUT_AWS_SERVICEURL"
	KeyStageOutRegion     = "STAGEOUT_AWS_REGION"
	KeyStageOutAccessKey  = "STAGEOUT_AWS_ACCESS_KEY_ID"
	KeyStageOutSecretKey  = "STAGEOUT_AWS_SECRET_ACCESS_KEY"
)

// endpointKeyPath is the documented key path the base post-execution
// hook resolves the object-store endpoint from.
const endpointKeyPath = types.SectionAdditionalParameters + "." + KeyStageOutServiceURL

// Hooks is the extension surface execution services implement. Every
// method has a complete default in CommonHandler; implementations
// embed it and override what they need. Composition across several
// extension handlers is explicit, through Chain.
type Hooks interface {
	// Name identifies the handler in logs and hook errors.
	Name() string

	// PreExecutionHook runs before the workflow is launched:
	// credential loading, input validation, environment preparation.
	PreExecutionHook(ctx context.Context) error

	// PostExecutionHook runs after the workflow terminates, success or
	// failure, with whatever artifacts it produced. It returns the
	// object-store credentials subsequent catalog access needs; the
	// runner installs the resulting transport. A nil return means the
	// hook has no stage-out configuration to contribute.
	PostExecutionHook(ctx context.Context, artifacts *types.RunArtifacts) (*stacio.Credentials, error)

	// PodEnvVars returns environment variables injected into the
	// execution pod.
	PodEnvVars() map[string]string

	// PodNodeSelector returns scheduling constraint labels.
	PodNodeSelector() map[string]string

	// AdditionalParameters returns free-form parameters merged into
	// the workflow invocation.
	AdditionalParameters() map[string]any
}

// CommonHandler is the base Hooks implementation. It holds the
// caller's configuration and outputs by reference for its entire
// lifetime and mutates them in place. Construction performs no
// validation: missing configuration surfaces at the point of use.
type CommonHandler struct {
	conf         types.Conf
	outputs      types.Outputs
	secretsPaths []string
	transport    *stacio.StacIO
	log          *zap.Logger
}

// HandlerOption configures a CommonHandler at construction.
type HandlerOption func(*CommonHandler)

// WithSecretsPaths overrides the ordered secrets file candidates.
func WithSecretsPaths(paths ...string) HandlerOption {
	return func(h *CommonHandler) { h.secretsPaths = paths }
}

// WithTransport pins the catalog transport instead of using the
// process-wide default.
func WithTransport(io *stacio.StacIO) HandlerOption {
	return func(h *CommonHandler) { h.transport = io }
}

// WithLogger overrides the logger.
func WithLogger(log *zap.Logger) HandlerOption {
	return func(h *CommonHandler) { h.log = log }
}

// New creates a CommonHandler over the caller's configuration and
// outputs. A nil outputs map defaults to an empty one.
func New(conf types.Conf, outputs types.Outputs, opts ...HandlerOption) *CommonHandler {
	if outputs == nil {
		outputs = make(types.Outputs)
	}
	h := &CommonHandler{
		conf:         conf,
		outputs:      outputs,
		secretsPaths: DefaultSecretsPaths,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = logger.L()
	}
	return h
}

// Conf returns the shared configuration mapping.
func (h *CommonHandler) Conf() types.Conf { return h.conf }

// Outputs returns the shared outputs mapping.
func (h *CommonHandler) Outputs() types.Outputs { return h.outputs }

// Name implements Hooks.
func (h *CommonHandler) Name() string { return "common" }

// PreExecutionHook implements Hooks. The base behavior is a no-op.
func (h *CommonHandler) PreExecutionHook(ctx context.Context) error {
	return nil
}

// PostExecutionHook implements Hooks. The base behavior resolves the
// stage-out object-store endpoint from the configuration and returns
// the credentials explicitly; the runner installs the transport. No
// process environment is written, so there is no ordering hazard
// between this hook and catalog access.
func (h *CommonHandler) PostExecutionHook(ctx context.Context, artifacts *types.RunArtifacts) (*stacio.Credentials, error) {
	endpoint, ok := h.conf.Lookup(endpointKeyPath)
	if !ok {
		h.log.Debug("no stage-out endpoint configured", zap.String("keyPath", endpointKeyPath))
		return nil, nil
	}

	creds := stacio.CredentialsFromEnv()
	creds.Endpoint, _ = endpoint.(string)
	if v, ok := h.conf.Get(types.SectionAdditionalParameters, KeyStageOutRegion); ok {
		creds.Region = v
	}
	if v, ok := h.conf.Get(types.SectionAdditionalParameters, KeyStageOutAccessKey); ok {
		creds.AccessKey = v
	}
	if v, ok := h.conf.Get(types.SectionAdditionalParameters, KeyStageOutSecretKey); ok {
		creds.SecretKey = v
	}
	return &creds, nil
}

// PodEnvVars implements Hooks. The base mapping is empty.
func (h *CommonHandler) PodEnvVars() map[string]string {
	return map[string]string{}
}

// PodNodeSelector implements Hooks. The base mapping is empty.
func (h *CommonHandler) PodNodeSelector() map[string]string {
	return map[string]string{}
}

// AdditionalParameters implements Hooks. The base mapping is empty.
func (h *CommonHandler) AdditionalParameters() map[string]any {
	return map[string]any{}
}

// SetOutput registers a value descriptor under name. A descriptor
// carrying a STAC catalog reference is opened through the transport
// and normalized: item collections are converted into catalogs, so
// downstream consumers always see a catalog-typed document. Plain
// descriptors are stored verbatim.
func (h *CommonHandler) SetOutput(ctx context.Context, name string, out types.Output) error {
	if out.StacCatalogURI == "" {
		h.outputs[name] = out
		return nil
	}

	io := h.stacIO()
	doc, err := io.ReadDocument(ctx, out.StacCatalogURI)
	if err != nil {
		return fmt.Errorf("read stac document %s: %w", out.StacCatalogURI, err)
	}

	if doc.Type == stac.TypeItemCollection || doc.Type == stac.TypeItem {
		cat, err := stac.AsCatalog(doc)
		if err != nil {
			return fmt.Errorf("normalize %s: %w", out.StacCatalogURI, err)
		}
		data, err := cat.Encode()
		if err != nil {
			return err
		}
		target := stacio.SiblingLocation(out.StacCatalogURI, "catalog.json")
		if err := io.WriteText(ctx, target, string(data)); err != nil {
			return fmt.Errorf("write derived catalog %s: %w", target, err)
		}
		h.log.Debug("normalized item collection into catalog",
			zap.String("source", out.StacCatalogURI), zap.String("catalog", target))
		out.StacCatalogURI = target
	}

	if out.MimeType == "" {
		out.MimeType = "application/json"
	}
	h.outputs[name] = out
	return nil
}

// HandleOutputs registers every tool log from the run artifacts as a
// first-class output named <tool>_log_<index>, so per-tool execution
// logs are downloadable alongside workflow results.
func (h *CommonHandler) HandleOutputs(ctx context.Context, artifacts *types.RunArtifacts) error {
	if artifacts == nil || len(artifacts.ToolLogs) == 0 {
		return nil
	}

	tools := make([]string, 0, len(artifacts.ToolLogs))
	for tool := range artifacts.ToolLogs {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	for _, tool := range tools {
		for i, logPath := range artifacts.ToolLogs[tool] {
			name := fmt.Sprintf("%s_log_%d", tool, i)
			h.outputs[name] = types.Output{
				Value:    logPath,
				MimeType: "text/plain",
			}
		}
	}
	return nil
}

func (h *CommonHandler) stacIO() *stacio.StacIO {
	if h.transport != nil {
		return h.transport
	}
	return stacio.Default()
}
