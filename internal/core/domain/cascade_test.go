package domain

import (
	"reflect"
	"testing"
)

func TestPlanProductDeletion_MainAndAuxiliary(t *testing.T) {
	p := &Product{ID: "p1", MainImageID: "img-main"}
	aux := []Image{
		{ID: "img-a", ProductID: "p1"},
		{ID: "img-b", ProductID: "p1"},
	}

	plan := PlanProductDeletion(p, aux)

	if plan.ProductID != "p1" {
		t.Errorf("ProductID = %q", plan.ProductID)
	}
	if !reflect.DeepEqual(plan.RemoveImageIDs, []string{"img-main"}) {
		t.Errorf("RemoveImageIDs = %v, want [img-main]", plan.RemoveImageIDs)
	}
	if !reflect.DeepEqual(plan.DetachImageIDs, []string{"img-a", "img-b"}) {
		t.Errorf("DetachImageIDs = %v", plan.DetachImageIDs)
	}
}

func TestPlanProductDeletion_MainImageListedAsAuxiliary(t *testing.T) {
	// A main image also present in the auxiliary collection must be removed
	// once, never detached.
	p := &Product{ID: "p1", MainImageID: "img-main"}
	aux := []Image{{ID: "img-main", ProductID: "p1"}, {ID: "img-a", ProductID: "p1"}}

	plan := PlanProductDeletion(p, aux)

	if !reflect.DeepEqual(plan.RemoveImageIDs, []string{"img-main"}) {
		t.Errorf("RemoveImageIDs = %v", plan.RemoveImageIDs)
	}
	if !reflect.DeepEqual(plan.DetachImageIDs, []string{"img-a"}) {
		t.Errorf("DetachImageIDs = %v", plan.DetachImageIDs)
	}
}

func TestPlanProductDeletion_NoImages(t *testing.T) {
	plan := PlanProductDeletion(&Product{ID: "p2"}, nil)

	if len(plan.RemoveImageIDs) != 0 || len(plan.DetachImageIDs) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}
