package domain

import (
	"reflect"
	"testing"
)

func TestDiff(t *testing.T) {
	base := Definition{
		Name:        "orders",
		Description: "Order lifecycle",
		Transitions: Transitions{
			{From: "pending", To: []string{"processing"}},
			{From: "processing", To: []string{"approved", "rejected"}},
			{From: "rejected"},
		},
	}

	tests := []struct {
		name     string
		new      Definition
		wantDiff *DefinitionDiff
	}{
		{
			name:     "No Changes",
			new:      base,
			wantDiff: nil,
		},
		{
			name: "Reordered Successors",
			new: Definition{
				Name:        "orders",
				Description: "Order lifecycle",
				Transitions: Transitions{
					{From: "rejected"},
					{From: "processing", To: []string{"rejected", "approved", "approved"}},
					{From: "pending", To: []string{"processing"}},
				},
			},
			wantDiff: nil,
		},
		{
			name: "Added Removed Changed",
			new: Definition{
				Name:        "orders",
				Description: "Order lifecycle",
				Transitions: Transitions{
					{From: "pending", To: []string{"processing", "cancelled"}},
					{From: "processing", To: []string{"approved", "rejected"}},
					{From: "approved", To: []string{"processed"}},
				},
			},
			wantDiff: &DefinitionDiff{
				Added:   []string{"approved"},
				Removed: []string{"rejected"},
				Changed: []string{"pending"},
			},
		},
		{
			name: "Description Only",
			new: Definition{
				Name:        "orders",
				Description: "Orders v2",
				Transitions: base.Transitions,
			},
			wantDiff: &DefinitionDiff{DescriptionChanged: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(base, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				t.Errorf("Diff() = %+v, want %+v", got, tt.wantDiff)
			}
		})
	}
}

func TestDiff_FromEmpty(t *testing.T) {
	got := Diff(Definition{}, Definition{
		Name:        "tickets",
		Transitions: Transitions{{From: "open", To: []string{"closed"}}},
	})
	want := &DefinitionDiff{Added: []string{"open"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Diff() = %+v, want %+v", got, want)
	}
}
