package compound

import (
	"context"
	"strings"
	"time"

	core "github.com/scienceol/chemcheck/pkg/core/compound"
	"github.com/scienceol/chemcheck/pkg/core/notify"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/repo"
	repoPubchem "github.com/scienceol/chemcheck/pkg/repo/pubchem"
	"github.com/scienceol/chemcheck/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type compoundImpl struct {
	pubchem   repo.PubChemRepo
	msgCenter notify.MsgCenter

	resolveCount    metric.Int64Counter
	resolveDuration metric.Float64Histogram
}

// New resolves against PubChem. msgCenter may be nil, in which case no
// events are published.
func New(msgCenter notify.MsgCenter) core.Service {
	return NewWithRepo(repoPubchem.NewPubChemRepo(), msgCenter)
}

func NewWithRepo(store repo.PubChemRepo, msgCenter notify.MsgCenter) core.Service {
	c := &compoundImpl{
		pubchem:   store,
		msgCenter: msgCenter,
	}
	c.initMetrics()
	return c
}

func (c *compoundImpl) initMetrics() {
	ctx := context.Background()
	meter := otel.Meter("chemcheck/compound")

	var err error
	if c.resolveCount, err = meter.Int64Counter("compound.resolve.count",
		metric.WithDescription("Number of compound name resolutions")); err != nil {
		logger.Warnf(ctx, "create resolve counter err: %+v", err)
		c.resolveCount = noop.Int64Counter{}
	}
	if c.resolveDuration, err = meter.Float64Histogram("compound.resolve.duration",
		metric.WithDescription("Duration of compound name resolutions"),
		metric.WithUnit("ms")); err != nil {
		logger.Warnf(ctx, "create resolve histogram err: %+v", err)
		c.resolveDuration = noop.Float64Histogram{}
	}
}

func (c *compoundImpl) Resolve(ctx context.Context, name string) *core.Result {
	start := time.Now()
	result := c.resolve(ctx, name)

	attrs := metric.WithAttributes(attribute.Bool("valid", result.Valid()))
	c.resolveCount.Add(ctx, 1, attrs)
	c.resolveDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)

	c.broadcast(ctx, name, result)
	return result
}

func (c *compoundImpl) resolve(ctx context.Context, name string) *core.Result {
	var result *core.Result
	if err := utils.SafelyRun(func() { result = c.lookup(ctx, name) }); err != nil {
		logger.Errorf(ctx, "resolve compound %q panic: %+v", name, err)
		msg, _, _ := strings.Cut(err.Error(), "\n")
		return core.Fail(msg)
	}
	return result
}

func (c *compoundImpl) lookup(ctx context.Context, name string) *core.Result {
	infos, err := c.pubchem.GetCompoundsByName(ctx, name)
	if err != nil {
		logger.Warnf(ctx, "resolve compound %q err: %v", name, err)
		return core.Fail(err.Error())
	}
	if len(infos) == 0 || infos[0] == nil {
		logger.Infof(ctx, "resolve compound %q: no match", name)
		return core.Fail(core.NoMatchMsg)
	}

	first := infos[0]
	logger.Infof(ctx, "resolve compound %q: cid %d of %d matches", name, first.CID, len(infos))
	return core.Ok(&core.Compound{
		CID:              first.CID,
		Name:             first.IUPACName,
		MolecularFormula: first.MolecularFormula,
		MolecularWeight:  first.MolecularWeight,
		WeightText:       first.WeightText,
		CanonicalSMILES:  first.CanonicalSMILES,
	})
}

func (c *compoundImpl) broadcast(ctx context.Context, name string, result *core.Result) {
	if c.msgCenter == nil {
		return
	}
	if err := c.msgCenter.Broadcast(ctx, &notify.SendMsg{
		Channel: notify.CompoundResolve,
		Data:    &core.ResolveEvent{Name: name, Result: result},
	}); err != nil {
		logger.Warnf(ctx, "broadcast resolve event for %q err: %+v", name, err)
	}
}
