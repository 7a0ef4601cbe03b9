/*
Copyright 2024 topo-configgen contributors
*/

// Package plan orchestrates the configuration-generation pipeline end to
// end: address allocation, then the link/VLAN/routing plans, then the
// device configurators, then the emitters, in the fixed order spec.md §5
// requires. It is the pipeline's single entry point; collaborators never
// call the stage packages directly.
package plan

import (
	"context"

	"go.uber.org/zap"

	"github.com/nodeforge/topo-configgen/pkg/coords"
	"github.com/nodeforge/topo-configgen/pkg/emit"
	"github.com/nodeforge/topo-configgen/pkg/ipam"
	"github.com/nodeforge/topo-configgen/pkg/iosconfig"
	"github.com/nodeforge/topo-configgen/pkg/linkplan"
	"github.com/nodeforge/topo-configgen/pkg/routing"
	"github.com/nodeforge/topo-configgen/pkg/topology"
	"github.com/nodeforge/topo-configgen/pkg/vlanplan"
)

// Request is one generation request: a validated topology plus the
// request-scoped knobs spec.md §6 names.
type Request struct {
	Devices          []*topology.Device
	Links            []*topology.Link
	VLANs            []*topology.VLAN
	BaseNetworkOctet int
	Mode             topology.GenerationMode
	CoordinateScale  float64
}

// Result is the full set of artifacts a successful generation produces.
type Result struct {
	Bundles         emit.Bundles
	Report          string
	SimulatorDriver string
}

// Generate runs the full pipeline for one request. It checks ctx for
// cancellation between stages only, per spec.md §5's coarse-grained
// cancellation model; a cancelled request returns ctx.Err() and no partial
// artifact.
func Generate(ctx context.Context, log *zap.Logger, req Request) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	octet := req.BaseNetworkOctet
	if octet == 0 {
		octet = 19
	}
	mode := req.Mode
	if mode == "" {
		mode = topology.ModeDigital
	}

	log.Info("generation request started",
		zap.Int("devices", len(req.Devices)),
		zap.Int("links", len(req.Links)),
		zap.Int("vlans", len(req.VLANs)),
		zap.Int("baseNetworkOctet", octet),
		zap.String("mode", string(mode)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topo, err := topology.Build(req.Devices, req.Links, req.VLANs)
	if err != nil {
		log.Error("topology build failed", zap.Error(err))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	registry, err := ipam.NewRegistryFromOctet(octet)
	if err != nil {
		return nil, err
	}

	linkPlan, err := linkplan.Build(topo, registry)
	if err != nil {
		log.Error("link plan failed", zap.Error(err))
		return nil, err
	}

	vlanPlan, err := vlanplan.Build(topo, registry)
	if err != nil {
		log.Error("vlan plan failed", zap.Error(err))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	routePlan := routing.Solve(topo, linkPlan, vlanPlan)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	configPlan, err := iosconfig.Build(iosconfig.Inputs{
		Topology: topo,
		Links:    linkPlan,
		VLANs:    vlanPlan,
		Routes:   routePlan,
		Mode:     mode,
	})
	if err != nil {
		log.Error("device config build failed", zap.Error(err))
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emitIn := emit.Inputs{Topology: topo, Links: linkPlan, VLANs: vlanPlan, Configs: configPlan}

	scale := req.CoordinateScale
	if scale == 0 {
		scale = coords.DefaultScale
	}

	result := &Result{
		Bundles:         emit.DeviceBundles(emitIn),
		Report:          emit.Report(emitIn),
		SimulatorDriver: emit.SimulatorDriver(emitIn, scale),
	}

	log.Info("generation request completed", zap.Int("configuredDevices", len(configPlan.ByDevice)))

	return result, nil
}
