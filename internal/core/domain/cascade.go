package domain

// ProductDeletionPlan lists every cleanup step a product deletion requires.
// It is computed from in-memory state so the cascade can be tested without a
// live store; the repository applies it as a single atomic unit.
type ProductDeletionPlan struct {
	ProductID string
	// RemoveImageIDs are image rows deleted outright (the main image).
	RemoveImageIDs []string
	// DetachImageIDs are auxiliary images whose back-reference is cleared;
	// the rows themselves survive.
	DetachImageIDs []string
}

// PlanProductDeletion builds the cascade for removing a product: delete the
// main image, detach every auxiliary image, then remove the product. An
// auxiliary entry that is also the main image is removed, not detached.
func PlanProductDeletion(p *Product, auxiliary []Image) ProductDeletionPlan {
	plan := ProductDeletionPlan{ProductID: p.ID}
	if p.MainImageID != "" {
		plan.RemoveImageIDs = append(plan.RemoveImageIDs, p.MainImageID)
	}
	for _, img := range auxiliary {
		if img.ID == p.MainImageID {
			continue
		}
		plan.DetachImageIDs = append(plan.DetachImageIDs, img.ID)
	}
	return plan
}
