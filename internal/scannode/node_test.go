package scannode

import "testing"

func TestNewFileNodeSharesEmptyChildren(t *testing.T) {
	f1 := NewFileNode("/a", "a", 10, 512)
	f2 := NewFileNode("/b", "b", 20, 512)
	if len(f1.Children) != 0 || len(f2.Children) != 0 {
		t.Fatal("expected empty children for file nodes")
	}
	if f1.IsDir() {
		t.Fatal("file node reported as dir")
	}
}

func TestNewDirNodeAddChild(t *testing.T) {
	dir := NewDirNode("/root", "root")
	if !dir.IsDir() {
		t.Fatal("expected dir node to report IsDir")
	}
	child := NewFileNode("/root/f", "f", 1, 512)
	dir.AddChild(child)
	if len(dir.Children) != 1 || dir.Children[0] != child {
		t.Fatalf("expected child to be appended, got %v", dir.Children)
	}
}

func TestSortChildrenByDiskUsageDescendingThenName(t *testing.T) {
	dir := NewDirNode("/root", "root")
	small := NewFileNode("/root/b", "b", 1, 100)
	big := NewFileNode("/root/a", "a", 1, 300)
	tieA := NewFileNode("/root/z", "z", 1, 200)
	tieB := NewFileNode("/root/y", "y", 1, 200)
	dir.AddChild(small)
	dir.AddChild(tieA)
	dir.AddChild(big)
	dir.AddChild(tieB)

	dir.SortChildren()

	order := []string{dir.Children[0].Name, dir.Children[1].Name, dir.Children[2].Name, dir.Children[3].Name}
	want := []string{"a", "y", "z", "b"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

func TestScanStatsConcurrentAdds(t *testing.T) {
	stats := &ScanStats{}
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			stats.AddFiles(1)
			stats.AddDirectories(1)
			stats.AddAccessErrors(1)
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	if stats.Files() != 10 || stats.Directories() != 10 || stats.AccessErrors() != 10 {
		t.Fatalf("expected all counters at 10, got files=%d dirs=%d errs=%d", stats.Files(), stats.Directories(), stats.AccessErrors())
	}
}

func TestKindString(t *testing.T) {
	if File.String() != "file" {
		t.Fatalf("expected 'file', got %q", File.String())
	}
	if Directory.String() != "dir" {
		t.Fatalf("expected 'dir', got %q", Directory.String())
	}
}
