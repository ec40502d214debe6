package services

import (
	"math"
	"testing"

	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

const testDim = 4

func TestApplyInteractionNormalizesVector(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	row, updated, err := svc.ApplyInteraction(1, models.InteractionWear, [][]float64{{1, 0, 0, 0}}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !updated {
		t.Fatal("a qualifying embedding must update the vector")
	}
	if row.InteractionCount != 1 {
		t.Fatalf("interaction count = %d, want 1", row.InteractionCount)
	}
	if got := utils.Magnitude(row.Vector); math.Abs(got-1) > 1e-9 {
		t.Fatalf("vector magnitude = %v, want 1", got)
	}
	// A single axis-aligned evidence vector normalizes back onto its axis.
	if math.Abs(row.Vector[0]-1) > 1e-9 {
		t.Fatalf("vector[0] = %v, want 1", row.Vector[0])
	}
}

func TestApplyInteractionEMAArithmetic(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	if _, _, err := svc.ApplyInteraction(1, models.InteractionWear, [][]float64{{1, 0, 0, 0}}, nil); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	row, _, err := svc.ApplyInteraction(1, models.InteractionDislike, [][]float64{{0, 1, 0, 0}}, nil)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}

	// Pre-normalization state is [0.95, -0.025, 0, 0]: the old unit vector
	// decayed by alpha, plus (1-alpha) * dislike weight * evidence.
	want := utils.Normalize([]float64{0.95, -0.025, 0, 0})
	for i := range want {
		if math.Abs(row.Vector[i]-want[i]) > 1e-9 {
			t.Fatalf("vector[%d] = %v, want %v", i, row.Vector[i], want[i])
		}
	}
	if row.Vector[1] >= 0 {
		t.Fatal("negative-weight evidence must pull its component negative")
	}
	if row.InteractionCount != 2 {
		t.Fatalf("interaction count = %d, want 2", row.InteractionCount)
	}
}

func TestApplyInteractionSkipsWrongDimension(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	row, updated, err := svc.ApplyInteraction(1, models.InteractionWear, [][]float64{{1, 2, 3}}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated {
		t.Fatal("wrong-dimension embeddings must not update the vector")
	}
	if row.InteractionCount != 0 {
		t.Fatalf("interaction count = %d, want 0", row.InteractionCount)
	}
}

func TestApplyInteractionMixedDimensions(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	// Only the well-formed embedding feeds the mean.
	row, updated, err := svc.ApplyInteraction(1, models.InteractionWear, [][]float64{
		{0, 2, 0, 0},
		{1, 2, 3, 4, 5},
	}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !updated {
		t.Fatal("one qualifying embedding is enough to update")
	}
	if math.Abs(row.Vector[1]-1) > 1e-9 {
		t.Fatalf("vector[1] = %v, want 1", row.Vector[1])
	}
}

func TestApplyInteractionUnknownTypeWeighsZero(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	// Zero weight on a zero vector leaves every component zero; the
	// zero-magnitude guard then skips normalization.
	row, updated, err := svc.ApplyInteraction(1, "poke", [][]float64{{1, 1, 1, 1}}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !updated {
		t.Fatal("the update still runs, it just carries no signal")
	}
	if got := utils.Magnitude(row.Vector); got != 0 {
		t.Fatalf("vector magnitude = %v, want 0", got)
	}
}

func TestApplyInteractionZeroWeightKeepsDirection(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	if _, _, err := svc.ApplyInteraction(1, models.InteractionWear, [][]float64{{1, 0, 0, 0}}, nil); err != nil {
		t.Fatalf("seed vector: %v", err)
	}

	// Zero weight decays the unit vector to 0.95x of itself; normalization
	// restores it, so the stored vector is numerically unchanged.
	row, updated, err := svc.ApplyInteraction(1, "poke", [][]float64{{0, 1, 0, 0}}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !updated {
		t.Fatal("the update still runs, it just carries no signal")
	}
	want := []float64{1, 0, 0, 0}
	for i := range want {
		if math.Abs(row.Vector[i]-want[i]) > 1e-9 {
			t.Fatalf("vector[%d] = %v, want %v", i, row.Vector[i], want[i])
		}
	}
	if row.InteractionCount != 2 {
		t.Fatalf("interaction count = %d, want 2", row.InteractionCount)
	}
}

func TestTagCorrectionKeepsSetsExclusive(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	// Build up: vintage preferred, grunge avoided.
	if _, _, err := svc.ApplyInteraction(1, models.InteractionTagCorrection, nil, &models.TagCorrection{NewTag: "vintage"}); err != nil {
		t.Fatalf("seed preferred: %v", err)
	}
	row, err := svc.Get(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	row.AvoidedTags = append(row.AvoidedTags, "grunge")
	if err := svc.db.Save(row).Error; err != nil {
		t.Fatalf("save avoided: %v", err)
	}

	// Correcting vintage -> grunge moves grunge into preferred and out of avoided.
	out, updated, err := svc.ApplyInteraction(1, models.InteractionTagCorrection, nil, &models.TagCorrection{OldTag: "vintage", NewTag: "grunge"})
	if err != nil {
		t.Fatalf("apply correction: %v", err)
	}
	if updated {
		t.Fatal("a pure tag correction must not touch the vector")
	}
	if utils.ContainsTag(out.PreferredTags, "vintage") {
		t.Fatal("old tag must leave the preferred set")
	}
	if !utils.ContainsTag(out.PreferredTags, "grunge") {
		t.Fatal("new tag must join the preferred set")
	}
	if utils.ContainsTag(out.AvoidedTags, "grunge") {
		t.Fatal("a tag never sits in both sets at once")
	}
}

func TestTagCorrectionNormalizesLabels(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)

	out, _, err := svc.ApplyInteraction(1, models.InteractionTagCorrection, nil, &models.TagCorrection{NewTag: "  Streetwear "})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !utils.ContainsTag(out.PreferredTags, "streetwear") {
		t.Fatalf("labels are trimmed and lowercased, got %v", out.PreferredTags)
	}
}

func TestGetBeforeFirstInteraction(t *testing.T) {
	svc := NewStyleVectorServiceWithDim(testDB(t), testDim)
	row, err := svc.Get(9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(row.Vector) != 0 || row.InteractionCount != 0 {
		t.Fatalf("want empty state, got %+v", row)
	}
}
