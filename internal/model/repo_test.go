// internal/model/repo_test.go
package model

import "testing"

func TestNewRepo(t *testing.T) {
	r := NewRepo("/home/user/code/myproject")
	if r.Name != "myproject" {
		t.Errorf("Name = %q, want %q", r.Name, "myproject")
	}
	if r.Path != "/home/user/code/myproject" {
		t.Errorf("Path = %q, want the full path", r.Path)
	}
}

func TestInfo_StatusWord(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"clean", Info{}, "clean"},
		{"dirty", Info{Dirty: true, Modified: 1}, "dirty"},
		{"conflict beats dirty", Info{Dirty: true, Conflicts: 2}, "conflict"},
		{"unpushed", Info{Ahead: 3}, "unpushed"},
		{"unpulled", Info{Behind: 1}, "unpulled"},
		{"dirty beats unpushed", Info{Dirty: true, Untracked: 1, Ahead: 3}, "dirty"},
		{"unpushed beats unpulled", Info{Ahead: 1, Behind: 2}, "unpushed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.StatusWord(); got != tt.want {
				t.Errorf("StatusWord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfo_HasSpecialState(t *testing.T) {
	if (Info{}).HasSpecialState() {
		t.Error("HasSpecialState() = true for zero Info")
	}
	if !(Info{Special: SpecialRebase}).HasSpecialState() {
		t.Error("HasSpecialState() = false with a rebase in progress")
	}
}

func TestSortByPath(t *testing.T) {
	infos := []Info{
		{Repo: NewRepo("/b")},
		{Repo: NewRepo("/a")},
		{Repo: NewRepo("/c")},
	}
	SortByPath(infos)

	want := []string{"/a", "/b", "/c"}
	for i, w := range want {
		if infos[i].Path != w {
			t.Errorf("infos[%d].Path = %q, want %q", i, infos[i].Path, w)
		}
	}
}
