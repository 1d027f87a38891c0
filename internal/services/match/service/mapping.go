package service

import (
	"dealflow/internal/core/budget"
	"dealflow/internal/core/feature"
	orgdom "dealflow/internal/services/orgs/domain"
)

func fundraiserRecord(f orgdom.Fundraiser) feature.Record {
	return feature.Record{
		Kind:        feature.KindFundraiser,
		ID:          f.ID,
		Category:    f.Category,
		Description: f.Description,
		Address:     f.Address,
		Stage:       f.Stage,
		Needs:       f.Needs,
		Views:       f.Views,
		Likes:       f.Likes,
		Bookmarks:   f.Bookmarks,
		CreatedAt:   f.CreatedAt,
	}
}

func providerRecord(p orgdom.Provider) feature.Record {
	return feature.Record{
		Kind:        feature.KindProvider,
		ID:          p.ID,
		Category:    p.Focus,
		Description: p.Description,
		Address:     p.Address,
	}
}

func partnerRecord(p orgdom.Partner) feature.Record {
	return feature.Record{
		Kind:        feature.KindPartner,
		ID:          p.ID,
		Category:    p.PartnershipType,
		Description: p.Description,
		Address:     p.Address,
	}
}

func budgetFunds(fs []orgdom.Fund) []budget.Fund {
	out := make([]budget.Fund, 0, len(fs))
	for _, f := range fs {
		out = append(out, budget.Fund{
			TicketMin:   f.TicketMin,
			TicketMax:   f.TicketMax,
			Total:       f.Total,
			Uncommitted: f.Uncommitted,
			WindowFrom:  f.WindowFrom,
			WindowTo:    f.WindowTo,
		})
	}
	return out
}
