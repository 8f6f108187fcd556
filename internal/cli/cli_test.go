package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"navtree/internal/model"
	"navtree/internal/store"
	"navtree/internal/web"

	"github.com/gin-gonic/gin"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: navtree %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func mustFail(t *testing.T, args ...string) string {
	t.Helper()
	_, stderr, err := runCLI(t, args)
	if err == nil {
		t.Fatalf("expected navtree %v to fail", args)
	}
	return string(stderr)
}

func data(env map[string]any) map[string]any {
	m, _ := env["data"].(map[string]any)
	return m
}

func topIDs(t *testing.T, dir, menuID string) []string {
	t.Helper()
	m, err := store.Store{Dir: dir}.GetMenu(context.Background(), menuID)
	if err != nil {
		t.Fatalf("GetMenu: %v", err)
	}
	var out []string
	for _, it := range m.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestMenusCreateListShowDelete(t *testing.T) {
	dir := t.TempDir()

	created := data(mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main", "--location", "footer", "--description", "Site *footer*"))
	if created["id"] != "main" || created["location"] != "footer" || created["type"] != "main" || created["status"] != "active" {
		t.Fatalf("unexpected created menu: %#v", created)
	}

	if stderr := mustFail(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Again"); !strings.Contains(stderr, "already exists") {
		t.Fatalf("expected duplicate menu error, got %q", stderr)
	}
	if stderr := mustFail(t, "--dir", dir, "menus", "create", "--name", "X", "--location", "attic"); !strings.Contains(stderr, "invalid location") {
		t.Fatalf("expected location error, got %q", stderr)
	}
	mustFail(t, "--dir", dir, "menus", "create", "--location", "header")

	list := mustRun(t, "--dir", dir, "menus", "list")
	if xs, _ := list["data"].([]any); len(xs) != 1 {
		t.Fatalf("expected one menu, got %#v", list["data"])
	}

	shown := data(mustRun(t, "--dir", dir, "menus", "show", "main"))
	if shown["description"] != "Site *footer*" {
		t.Fatalf("unexpected description: %#v", shown["description"])
	}

	mustRun(t, "--dir", dir, "menus", "delete", "main")
	if stderr := mustFail(t, "--dir", dir, "menus", "show", "main"); !strings.Contains(stderr, "menu not found") {
		t.Fatalf("expected not found, got %q", stderr)
	}
	mustFail(t, "--dir", dir, "menus", "delete", "main")
}

func TestItemsAddMoveIndentDelete(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")

	added := data(mustRun(t, "--dir", dir, "items", "add", "main", "--id", "A", "--title", "Home", "--url", "/", "--icon", "home"))
	if added["outcome"] != "added" || added["itemId"] != "A" || added["message"] != "Item added" {
		t.Fatalf("unexpected add result: %#v", added)
	}
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "B", "--title", "Blog", "--url", "/blog", "--type", "category")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "C", "--title", "News", "--url", "/news", "--type", "post")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "B1", "--parent", "B", "--title", "Go", "--url", "/blog/go")

	moved := data(mustRun(t, "--dir", dir, "items", "move", "main", "A", "C"))
	if moved["outcome"] != "reordered" || moved["message"] != "Order updated" {
		t.Fatalf("unexpected move result: %#v", moved)
	}
	if got := strings.Join(topIDs(t, dir, "main"), ","); got != "B,C,A" {
		t.Fatalf("expected B,C,A, got %s", got)
	}

	moved = data(mustRun(t, "--dir", dir, "items", "move", "main", "A", "B1"))
	if moved["message"] != "Moved to new parent" {
		t.Fatalf("unexpected reparent result: %#v", moved)
	}
	if got := strings.Join(topIDs(t, dir, "main"), ","); got != "B,C" {
		t.Fatalf("expected A nested under B, got top level %s", got)
	}

	mustRun(t, "--dir", dir, "items", "move", "main", "A", "--root")
	if got := strings.Join(topIDs(t, dir, "main"), ","); got != "B,C,A" {
		t.Fatalf("expected A back at the top level, got %s", got)
	}

	mustRun(t, "--dir", dir, "items", "indent", "main", "C")
	mustRun(t, "--dir", dir, "items", "outdent", "main", "C")
	if got := strings.Join(topIDs(t, dir, "main"), ","); got != "B,C,A" {
		t.Fatalf("expected indent then outdent to restore order, got %s", got)
	}

	if stderr := mustFail(t, "--dir", dir, "items", "move", "main", "B", "B1"); !strings.Contains(stderr, "own subtree") {
		t.Fatalf("expected cycle rejection, got %q", stderr)
	}
	if stderr := mustFail(t, "--dir", dir, "items", "move", "main", "B", "nope"); !strings.Contains(stderr, "not found") {
		t.Fatalf("expected not found, got %q", stderr)
	}
	mustFail(t, "--dir", dir, "items", "move", "main", "B")

	deleted := data(mustRun(t, "--dir", dir, "items", "delete", "main", "B"))
	if deleted["outcome"] != "deleted" {
		t.Fatalf("unexpected delete result: %#v", deleted)
	}
	if got := strings.Join(topIDs(t, dir, "main"), ","); got != "C,A" {
		t.Fatalf("expected C,A after delete, got %s", got)
	}

	evs := mustRun(t, "--dir", dir, "events", "main")
	xs, _ := evs["data"].([]any)
	if len(xs) < 8 {
		t.Fatalf("expected an event per mutation, got %d", len(xs))
	}
}

func TestItemsAdd_ValidationReportsFields(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")

	stderr := mustFail(t, "--dir", dir, "items", "add", "main", "--type", "widget", "--visibility", "tablet")
	for _, want := range []string{"title: is required", "url: is required", "type: must be one of", "visibility"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("expected %q in %q", want, stderr)
		}
	}
	if stderr := mustFail(t, "--dir", dir, "items", "add", "main", "--parent", "ghost", "--title", "X", "--url", "/x"); !strings.Contains(stderr, "not found") {
		t.Fatalf("expected missing parent error, got %q", stderr)
	}
	if len(topIDs(t, dir, "main")) != 0 {
		t.Fatalf("expected no items after failed adds")
	}
}

func TestItemsEdit_KeepsUnsetFields(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "A", "--title", "Docs", "--url", "/docs", "--roles", "editor,admin")

	edited := data(mustRun(t, "--dir", dir, "items", "edit", "main", "A", "--target", "_blank", "--inactive"))
	if edited["outcome"] != "edited" {
		t.Fatalf("unexpected edit result: %#v", edited)
	}
	m, err := store.Store{Dir: dir}.GetMenu(context.Background(), "main")
	if err != nil {
		t.Fatalf("GetMenu: %v", err)
	}
	it := m.Items[0]
	if it.Title != "Docs" || it.URL != "/docs" || len(it.Roles) != 2 || !it.OpensNewWindow() || it.Active {
		t.Fatalf("unexpected edited item: %+v", it)
	}

	unchanged := data(mustRun(t, "--dir", dir, "items", "edit", "main", "A", "--title", "Docs"))
	if unchanged["outcome"] != "none" {
		t.Fatalf("expected no-op edit, got %#v", unchanged["outcome"])
	}
	mustFail(t, "--dir", dir, "items", "edit", "main", "ghost", "--title", "X")
}

func TestItemsFind_Fuzzy(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "blog", "--title", "Blog", "--url", "/blog")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "golang", "--parent", "blog", "--title", "Golang posts", "--url", "/blog/go")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "about", "--title", "About", "--url", "/about")

	found := mustRun(t, "--dir", dir, "items", "find", "main", "olng")
	xs, _ := found["data"].([]any)
	if len(xs) != 1 {
		t.Fatalf("expected one match, got %#v", found["data"])
	}
	hit := xs[0].(map[string]any)
	path, _ := hit["path"].([]any)
	if hit["id"] != "golang" || len(path) != 1 || path[0] != "Blog" {
		t.Fatalf("unexpected match: %#v", hit)
	}
}

func TestMenusTree_TextOutput(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "P", "--title", "Products", "--url", "/p")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "Q", "--parent", "P", "--title", "Pricing", "--url", "/p/price", "--target", "_blank")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "menus", "tree", "main", "--ascii"})
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	out := string(stdout)
	if !strings.Contains(out, "Products (/p) [custom] P") || !strings.Contains(out, "`-- Pricing (/p/price) [custom] Q {new-window}") {
		t.Fatalf("unexpected tree output:\n%s", out)
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := model.Menu{
		Name:     "Footer",
		Location: model.LocationFooter,
		Items: []model.MenuItem{
			{ID: "legal", Title: "Legal", URL: "/legal", Type: model.ItemTypePage, Active: true, Children: []model.MenuItem{
				{ID: "privacy", Title: "Privacy", URL: "/privacy", Type: model.ItemTypePage, Active: true},
			}},
		},
	}
	raw, _ := json.Marshal(doc)
	path := filepath.Join(t.TempDir(), "footer.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	imported := data(mustRun(t, "--dir", dir, "menus", "import", path, "--id", "footer"))
	if imported["id"] != "footer" {
		t.Fatalf("unexpected import: %#v", imported)
	}

	stdout, _, err := runCLI(t, []string{"--dir", dir, "menus", "export", "footer"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var back model.Menu
	if err := json.Unmarshal(stdout, &back); err != nil {
		t.Fatalf("export is not a menu document: %v\n%s", err, stdout)
	}
	if back.ID != "footer" || len(back.Items) != 1 || back.Items[0].Children[0].ID != "privacy" {
		t.Fatalf("unexpected export: %+v", back)
	}

	dup := model.Menu{Name: "Bad", Location: model.LocationHeader, Items: []model.MenuItem{{ID: "x", Title: "X"}, {ID: "x", Title: "Y"}}}
	raw, _ = json.Marshal(dup)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	mustFail(t, "--dir", dir, "menus", "import", path)

	blank := model.Menu{Name: "Blank", Location: model.LocationHeader, Items: []model.MenuItem{{ID: "x", Type: "bogus"}}}
	raw, _ = json.Marshal(blank)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if stderr := mustFail(t, "--dir", dir, "menus", "import", path, "--id", "blank"); !strings.Contains(stderr, "item x:") || !strings.Contains(stderr, "url: is required") {
		t.Fatalf("expected per-item validation error, got %q", stderr)
	}
	if _, err := (store.Store{Dir: dir}).GetMenu(context.Background(), "blank"); err == nil {
		t.Fatalf("expected invalid import not to be stored")
	}
}

func TestFormatEDN(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "edn", "menus", "show", "main"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	out := string(stdout)
	if !strings.HasPrefix(out, "{:data") || !strings.Contains(out, `:name "Main"`) {
		t.Fatalf("unexpected edn output: %s", out)
	}

	mustFail(t, "--dir", dir, "--format", "yaml", "menus", "list")
}

func TestInvalidLogLevel(t *testing.T) {
	if stderr := mustFail(t, "--dir", t.TempDir(), "--log-level", "loud", "menus", "list"); !strings.Contains(stderr, "invalid --log-level") {
		t.Fatalf("expected log level error, got %q", stderr)
	}
}

func TestFetchAndPushAgainstAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	remote := store.Store{Dir: t.TempDir()}
	if _, err := remote.SaveMenu(context.Background(), model.Menu{
		ID: "main", Name: "Main", Location: model.LocationHeader,
		Items: []model.MenuItem{{ID: "home", Title: "Home", URL: "/", Type: model.ItemTypeCustom, Active: true}},
	}); err != nil {
		t.Fatalf("seed remote: %v", err)
	}
	ts := httptest.NewServer(web.NewServer(web.Config{Store: remote}).Handler())
	defer ts.Close()
	api := ts.URL + "/api/v1"

	local := t.TempDir()
	fetched := data(mustRun(t, "--dir", local, "fetch", "main", "--api", api))
	if fetched["name"] != "Main" {
		t.Fatalf("unexpected fetch: %#v", fetched)
	}

	mustRun(t, "--dir", local, "items", "add", "main", "--id", "blog", "--title", "Blog", "--url", "/blog")
	mustRun(t, "--dir", local, "push", "main", "--api", api)

	m, err := remote.GetMenu(context.Background(), "main")
	if err != nil {
		t.Fatalf("GetMenu remote: %v", err)
	}
	if len(m.Items) != 2 || m.Items[1].ID != "blog" {
		t.Fatalf("expected pushed item on the remote, got %+v", m.Items)
	}

	if stderr := mustFail(t, "--dir", local, "fetch", "ghost", "--api", api); !strings.Contains(stderr, "404") && !strings.Contains(stderr, "not found") {
		t.Fatalf("expected not found from backend, got %q", stderr)
	}
	t.Setenv("NAVTREE_API_URL", "")
	mustFail(t, "--dir", local, "fetch", "main")
}

func TestFetch_RejectsInvalidRemoteMenu(t *testing.T) {
	gin.SetMode(gin.TestMode)
	remote := store.Store{Dir: t.TempDir()}
	if _, err := remote.SaveMenu(context.Background(), model.Menu{
		ID: "main", Name: "Main", Location: model.LocationHeader,
		Items: []model.MenuItem{{ID: "js", Title: "Run", URL: "javascript:alert(1)", Type: model.ItemTypeCustom, Active: true}},
	}); err != nil {
		t.Fatalf("seed remote: %v", err)
	}
	ts := httptest.NewServer(web.NewServer(web.Config{Store: remote}).Handler())
	defer ts.Close()

	local := t.TempDir()
	if stderr := mustFail(t, "--dir", local, "fetch", "main", "--api", ts.URL+"/api/v1"); !strings.Contains(stderr, "item js:") {
		t.Fatalf("expected item validation error, got %q", stderr)
	}
	if _, err := (store.Store{Dir: local}).GetMenu(context.Background(), "main"); err == nil {
		t.Fatalf("expected rejected menu not to be stored locally")
	}
}

func TestMenusRender_FiltersByViewer(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "home", "--title", "Home", "--url", "/")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "admin", "--title", "Admin", "--url", "/admin", "--roles", "admin")

	stdout, _, err := runCLI(t, []string{"--dir", dir, "menus", "render", "main"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out := string(stdout); !strings.Contains(out, "- [Home](/)") || !strings.Contains(out, "- [Admin](/admin)") {
		t.Fatalf("unexpected markdown:\n%s", out)
	}

	stdout, _, err = runCLI(t, []string{"--dir", dir, "menus", "render", "main", "--as", "html", "--as-viewer"})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	out := string(stdout)
	if !strings.Contains(out, `<a href="/">Home</a>`) || strings.Contains(out, "/admin") {
		t.Fatalf("expected guest html without admin link:\n%s", out)
	}

	stdout, _, err = runCLI(t, []string{"--dir", dir, "menus", "render", "main", "--logged-in", "--roles", "admin"})
	if err != nil {
		t.Fatalf("render as admin: %v", err)
	}
	if !strings.Contains(string(stdout), "[Admin](/admin)") {
		t.Fatalf("expected admin to see admin link:\n%s", string(stdout))
	}

	mustFail(t, "--dir", dir, "menus", "render", "main", "--device", "watch")
}

func TestMenusPublish_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	mustRun(t, "--dir", dir, "menus", "create", "--id", "main", "--name", "Main")
	mustRun(t, "--dir", dir, "items", "add", "main", "--id", "home", "--title", "Home", "--url", "/")

	res := data(mustRun(t, "--dir", dir, "menus", "publish", "main", "--to", out))
	written, _ := res["written"].([]any)
	if len(written) != 2 {
		t.Fatalf("expected two files, got %#v", res)
	}
	if _, err := os.Stat(filepath.Join(out, "main.html")); err != nil {
		t.Fatalf("expected html file: %v", err)
	}
	mustFail(t, "--dir", dir, "menus", "publish", "main", "--to", out)
	mustRun(t, "--dir", dir, "menus", "publish", "main", "--to", out, "--overwrite")
}

func TestDocs_TopicsAndBody(t *testing.T) {
	topics := data(mustRun(t, "docs"))
	list, _ := topics["topics"].([]any)
	if len(list) == 0 {
		t.Fatalf("expected topics, got %#v", topics)
	}

	stdout, _, err := runCLI(t, []string{"docs", "tui"})
	if err != nil {
		t.Fatalf("docs tui: %v", err)
	}
	if !strings.Contains(string(stdout), "# ") {
		t.Fatalf("expected markdown body, got:\n%s", string(stdout))
	}
	mustFail(t, "docs", "nope")
}
