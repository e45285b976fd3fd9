package pubchem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/scienceol/chemcheck/internal/config"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/repo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

const (
	properties = "IUPACName,MolecularFormula,MolecularWeight,CanonicalSMILES,ConnectivitySMILES,IsomericSMILES,SMILES"
	namePath   = "/rest/pug/compound/name/{name}/property/{props}/JSON"

	faultNotFound   = "PUGREST.NotFound"
	faultServerBusy = "PUGREST.ServerBusy"
)

// weight accepts both "18.015" and 18.015; PubChem switched the property
// to a string. text keeps the digits as published, trailing zeros included.
type weight struct {
	value float64
	text  string
}

func (w *weight) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid MolecularWeight %q: %w", s, err)
	}
	w.value, w.text = f, s
	return nil
}

type property struct {
	CID                int64   `json:"CID"`
	IUPACName          *string `json:"IUPACName"`
	MolecularFormula   string  `json:"MolecularFormula"`
	MolecularWeight    weight  `json:"MolecularWeight"`
	CanonicalSMILES    string  `json:"CanonicalSMILES"`
	ConnectivitySMILES string  `json:"ConnectivitySMILES"`
	IsomericSMILES     string  `json:"IsomericSMILES"`
	SMILES             string  `json:"SMILES"`
}

type PropertyResponse struct {
	PropertyTable struct {
		Properties []property `json:"Properties"`
	} `json:"PropertyTable"`
}

type Fault struct {
	Code    string   `json:"Code"`
	Message string   `json:"Message"`
	Details []string `json:"Details"`
}

type FaultResponse struct {
	Fault *Fault `json:"Fault"`
}

// FaultError is a PUG REST fault other than "not found".
type FaultError struct {
	Status int
	Fault  Fault
}

func (f *FaultError) Error() string {
	msg := f.Fault.Code
	if f.Fault.Message != "" {
		msg += ": " + f.Fault.Message
	}
	if len(f.Fault.Details) > 0 {
		msg += " (" + strings.Join(f.Fault.Details, "; ") + ")"
	}
	return msg
}

type pubchemImpl struct {
	client  *resty.Client
	limiter *rate.Limiter
}

func NewPubChemRepo() repo.PubChemRepo {
	return NewWithConfig(config.Global().RPC.PubChem)
}

func NewWithConfig(conf config.RPCPubChem) repo.PubChemRepo {
	limit := rate.Inf
	if conf.RateLimit > 0 {
		limit = rate.Limit(conf.RateLimit)
	}

	return &pubchemImpl{
		client: resty.New().
			SetTimeout(time.Duration(conf.Timeout)*time.Second).
			EnableTrace().
			SetBaseURL(conf.Addr).
			SetHeader("Accept", "application/json"),
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (p *pubchemImpl) GetCompoundsByName(ctx context.Context, name string) ([]*repo.CompoundInfo, error) {
	ctx, span := otel.Tracer("chemcheck/pubchem").Start(ctx, "pubchem.GetCompoundsByName")
	defer span.End()
	span.SetAttributes(attribute.String("compound.name", name))

	infos, err := p.getCompoundsByName(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("compound.matches", len(infos)))
	return infos, nil
}

func (p *pubchemImpl) getCompoundsByName(ctx context.Context, name string) ([]*repo.CompoundInfo, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		logger.Warnf(ctx, "PubChem rate limiter wait err: %v", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, code.RPCRateLimitErr.WithErr(err)
	}

	propResp := &PropertyResponse{}
	faultResp := &FaultResponse{}
	res, err := p.client.R().
		SetContext(ctx).
		SetPathParam("name", name).
		SetRawPathParam("props", properties).
		SetResult(propResp).
		SetError(faultResp).
		Get(namePath)
	if err != nil {
		logger.Errorf(ctx, "Failed to request properties from PubChem: %v", err)
		return nil, code.RPCHttpErr.WithErr(err)
	}

	if res.StatusCode() != http.StatusOK {
		if faultResp.Fault == nil {
			return nil, code.RPCHttpCodeErr.WithMsgf("PubChem query failed: status %d", res.StatusCode())
		}
		if faultResp.Fault.Code == faultNotFound {
			logger.Infof(ctx, "PubChem has no compound named %q", name)
			return []*repo.CompoundInfo{}, nil
		}
		logger.Warnf(ctx, "PubChem fault status: %d code: %s msg: %s",
			res.StatusCode(), faultResp.Fault.Code, faultResp.Fault.Message)
		fault := &FaultError{Status: res.StatusCode(), Fault: *faultResp.Fault}
		if fault.Fault.Code == faultServerBusy {
			return nil, code.RPCRateLimitErr.WithErr(fault)
		}
		return nil, fault
	}

	if ct := res.Header().Get("Content-Type"); !strings.Contains(ct, "json") {
		return nil, code.RPCHttpCodeErr.WithMsgf("PubChem returned unexpected content type %q", ct)
	}

	props := propResp.PropertyTable.Properties
	infos := make([]*repo.CompoundInfo, 0, len(props))
	for _, prop := range props {
		infos = append(infos, &repo.CompoundInfo{
			CID:              prop.CID,
			IUPACName:        prop.IUPACName,
			MolecularFormula: prop.MolecularFormula,
			MolecularWeight:  prop.MolecularWeight.value,
			WeightText:       prop.MolecularWeight.text,
			CanonicalSMILES:  canonicalSMILES(prop),
		})
	}
	return infos, nil
}

// canonicalSMILES prefers the connectivity-only notation; PubChem renamed
// CanonicalSMILES to ConnectivitySMILES and IsomericSMILES to SMILES.
func canonicalSMILES(prop property) string {
	for _, s := range []string{prop.CanonicalSMILES, prop.ConnectivitySMILES, prop.SMILES, prop.IsomericSMILES} {
		if s != "" {
			return s
		}
	}
	return ""
}
