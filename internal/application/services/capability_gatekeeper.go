package services

import (
	"log/slog"

	apperrors "github.com/remotedeck/remotedeck/internal/application/errors"
	"github.com/remotedeck/remotedeck/internal/domain/capabilities"
)

// Security levels for the capability gatekeeper.
const (
	SecurityStrict     = "strict"
	SecurityStandard   = "standard"
	SecurityPermissive = "permissive"
)

// CapabilityGatekeeper is the security boundary between dispatched actions
// and the host. It checks each driver call against the operator's grants.
type CapabilityGatekeeper struct {
	policy        *capabilities.Policy
	granted       capabilities.Grant
	securityLevel string // Security level: strict, standard, permissive
	logger        *slog.Logger
}

// NewCapabilityGatekeeper creates a gatekeeper over granted. Broad grants
// are dropped in strict mode and reported at Warn otherwise.
func NewCapabilityGatekeeper(granted capabilities.Grant, securityLevel string, logger *slog.Logger) *CapabilityGatekeeper {
	if logger == nil {
		logger = slog.Default()
	}
	if securityLevel == "" {
		securityLevel = SecurityStandard
	}

	effective := capabilities.NewGrant()
	for _, c := range granted {
		if c.IsBroad() {
			if securityLevel == SecurityStrict {
				logger.Error("broad capability denied by security policy",
					"level", securityLevel,
					"capability", c.String(),
					"risk", c.RiskDescription())
				continue
			}
			logger.Warn("broad capability granted",
				"capability", c.String(),
				"risk", c.RiskDescription())
		}
		effective.Add(c)
	}

	return &CapabilityGatekeeper{
		policy:        capabilities.NewPolicy(),
		granted:       effective,
		securityLevel: securityLevel,
		logger:        logger,
	}
}

// Granted returns the effective grant after the security level was applied.
func (g *CapabilityGatekeeper) Granted() capabilities.Grant {
	return append(capabilities.Grant(nil), g.granted...)
}

// Check returns a CapabilityError when required is not covered. Permissive
// mode allows everything.
func (g *CapabilityGatekeeper) Check(required capabilities.Capability) error {
	if g.securityLevel == SecurityPermissive {
		return nil
	}
	if g.policy.IsGranted(required, g.granted) {
		return nil
	}
	return apperrors.NewCapabilityError(required.RiskDescription(), required)
}
