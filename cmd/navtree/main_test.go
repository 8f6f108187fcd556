package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectMenuArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"navtree"},
			want: []string{"navtree"},
		},
		{
			name: "direct menu id first token",
			in:   []string{"navtree", "menu-01j9x"},
			want: []string{"navtree", "tui", "menu-01j9x"},
		},
		{
			name: "direct menu id after value flag",
			in:   []string{"navtree", "--dir", "./tmp-store", "menu-01j9x"},
			want: []string{"navtree", "--dir", "./tmp-store", "tui", "menu-01j9x"},
		},
		{
			name: "direct menu id after equals flag",
			in:   []string{"navtree", "--dir=./tmp-store", "menu-01j9x"},
			want: []string{"navtree", "--dir=./tmp-store", "tui", "menu-01j9x"},
		},
		{
			name: "direct menu id after bool flag",
			in:   []string{"navtree", "--pretty", "menu-01j9x"},
			want: []string{"navtree", "--pretty", "tui", "menu-01j9x"},
		},
		{
			name: "direct menu id after double dash",
			in:   []string{"navtree", "--dir", "./tmp-store", "--", "menu-01j9x"},
			want: []string{"navtree", "--dir", "./tmp-store", "--", "tui", "menu-01j9x"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"navtree", "menu-"},
			want: []string{"navtree", "menu-"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"navtree", "menus", "show", "menu-01j9x"},
			want: []string{"navtree", "menus", "show", "menu-01j9x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectMenuArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectMenuArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
