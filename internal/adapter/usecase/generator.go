package usecase

import (
	"fmt"

	"coldreach/internal/core/domain"
)

// organization is one entry of the fixed discovery pool.
type organization struct {
	Company string
	Domain  string
}

// organizationPool is the candidate pool targets are drawn from. Generation
// cycles through it when a campaign asks for more targets than the pool
// holds.
var organizationPool = []organization{
	{"TechCorp Solutions", "techcorp.com"},
	{"InnovateLab Inc", "innovatelab.io"},
	{"DataDrive Analytics", "datadrive.co"},
	{"CloudScale Systems", "cloudscale.net"},
	{"AI Ventures", "aiventures.com"},
	{"DigitalFirst Agency", "digitalfirst.agency"},
	{"GrowthStack", "growthstack.io"},
	{"Nexus Technologies", "nexustech.com"},
	{"Quantum Soft", "quantumsoft.dev"},
	{"Velocity Labs", "velocitylabs.co"},
}

// rolePrefixes rotate by target index to vary the local part of generated
// addresses.
var rolePrefixes = []string{"ceo", "founder", "hr", "hiring", "info", "contact", "careers"}

// GenerateTargets produces exactly n pending targets for a campaign. It is
// pure and deterministic; n is assumed to be validated upstream.
func GenerateTargets(n int) []domain.Target {
	targets := make([]domain.Target, n)
	for i := 0; i < n; i++ {
		org := organizationPool[i%len(organizationPool)]
		targets[i] = domain.Target{
			Email:   fmt.Sprintf("%s@%s", rolePrefixes[i%len(rolePrefixes)], org.Domain),
			Company: org.Company,
			Status:  domain.TargetPending,
		}
	}
	return targets
}
