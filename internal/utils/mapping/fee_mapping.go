package mapping

import (
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/models"
)

// ToModelFeeRule converts a domain FeeRule to a model FeeRule.
// Tiers are mapped separately with ToModelFeeTier since they live in their own table.
func ToModelFeeRule(d domain.FeeRule) models.FeeRule {
	return models.FeeRule{
		FeeRuleID:   d.FeeRuleID,
		Name:        d.Name,
		Kind:        string(d.Kind),
		Value:       d.Value,
		Active:      d.Active,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFeeRule converts a model FeeRule plus its tier rows to a domain FeeRule
func ToDomainFeeRule(m models.FeeRule, tiers []models.FeeTier) domain.FeeRule {
	return domain.FeeRule{
		FeeRuleID:   m.FeeRuleID,
		Name:        m.Name,
		Kind:        domain.FeeKind(m.Kind),
		Value:       m.Value,
		Tiers:       ToDomainFeeTierSlice(tiers),
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFeeTier converts a domain FeeTier to a model FeeTier
func ToModelFeeTier(d domain.FeeTier, feeRuleID string) models.FeeTier {
	return models.FeeTier{
		FeeTierID: d.FeeTierID,
		FeeRuleID: feeRuleID,
		AmountMin: d.AmountMin,
		AmountMax: d.AmountMax,
		NoMax:     d.NoMax,
		Fee:       d.Fee,
		Kind:      string(d.Kind),
	}
}

// ToDomainFeeTier converts a model FeeTier to a domain FeeTier
func ToDomainFeeTier(m models.FeeTier) domain.FeeTier {
	return domain.FeeTier{
		FeeTierID: m.FeeTierID,
		AmountMin: m.AmountMin,
		AmountMax: m.AmountMax,
		NoMax:     m.NoMax,
		Fee:       m.Fee,
		Kind:      domain.FeeKind(m.Kind),
	}
}

// ToDomainFeeTierSlice converts a slice of model FeeTiers to a slice of domain FeeTiers
func ToDomainFeeTierSlice(ms []models.FeeTier) []domain.FeeTier {
	if len(ms) == 0 {
		return nil
	}
	ds := make([]domain.FeeTier, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeeTier(m)
	}
	return ds
}

// ToModelFeeSettings converts the domain FeeSettings singleton to its model form
func ToModelFeeSettings(d domain.FeeSettings) models.FeeSettings {
	return models.FeeSettings{
		FeesEnabled:         d.FeesEnabled,
		FeeMinimum:          d.FeeMinimum,
		FeeMaximum:          d.FeeMaximum,
		ExemptFirstTransfer: d.ExemptFirstTransfer,
		ActiveRuleID:        d.ActiveRuleID,
		DefaultFeePercent:   d.DefaultFeePercent,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFeeSettings converts the model FeeSettings singleton to its domain form
func ToDomainFeeSettings(m models.FeeSettings) domain.FeeSettings {
	return domain.FeeSettings{
		FeesEnabled:         m.FeesEnabled,
		FeeMinimum:          m.FeeMinimum,
		FeeMaximum:          m.FeeMaximum,
		ExemptFirstTransfer: m.ExemptFirstTransfer,
		ActiveRuleID:        m.ActiveRuleID,
		DefaultFeePercent:   m.DefaultFeePercent,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
