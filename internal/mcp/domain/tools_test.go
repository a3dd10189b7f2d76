package domain

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/lbruel/sceneforge/internal/audit"
	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type recordedCall struct {
	tool     string
	sceneID  string
	objectID string
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) Record(_ context.Context, tool, sceneID, objectID string, _ any) {
	f.calls = append(f.calls, recordedCall{tool: tool, sceneID: sceneID, objectID: objectID})
}

func newTestRegistry(t *testing.T) *scene.Registry {
	t.Helper()
	registry := scene.NewRegistry()
	if _, err := registry.CreateScene("studio"); err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	return registry
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected text content in result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func TestSceneCreateHandler(t *testing.T) {
	registry := scene.NewRegistry()
	recorder := &fakeRecorder{}
	handler := SceneCreateHandler(registry, recorder)

	callResult, result, err := handler(context.Background(), nil, SceneCreateInput{SceneID: "studio"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.Success || result.SceneID != "studio" || !result.Active {
		t.Fatalf("unexpected result %+v", result)
	}
	if text := resultText(t, callResult); !strings.Contains(text, "studio") {
		t.Errorf("text %q does not mention the scene", text)
	}
	if len(recorder.calls) != 1 || recorder.calls[0].tool != "scene_create" {
		t.Fatalf("unexpected recorder calls %+v", recorder.calls)
	}

	_, _, err = handler(context.Background(), nil, SceneCreateInput{SceneID: "studio"})
	if apperrors.GetCode(err) != apperrors.CodeSceneAlreadyExists {
		t.Fatalf("expected scene_already_exists, got %v", err)
	}
}

func TestCubeCreateHandlerDefaults(t *testing.T) {
	registry := newTestRegistry(t)
	recorder := &fakeRecorder{}
	handler := CubeCreateHandler(registry, recorder)

	_, result, err := handler(context.Background(), nil, CubeCreateInput{ObjectID: "box"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.SceneID != "studio" || result.Kind != "cube" {
		t.Fatalf("unexpected result %+v", result)
	}

	sc, err := registry.Scene("studio")
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	node, err := sc.Object("box")
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	cube := node.Geometry.Cube
	if cube == nil || cube.Width != 1 || cube.Height != 1 || cube.Depth != 1 {
		t.Errorf("expected unit cube defaults, got %+v", cube)
	}
}

func TestCubeCreateHandlerParentNotFound(t *testing.T) {
	registry := newTestRegistry(t)
	handler := CubeCreateHandler(registry, NopRecorder{})

	_, _, err := handler(context.Background(), nil, CubeCreateInput{ObjectID: "box", ParentID: "ghost"})
	if apperrors.GetCode(err) != apperrors.CodeParentNotFound {
		t.Fatalf("expected parent_not_found, got %v", err)
	}

	sc, _ := registry.Scene("studio")
	if _, err := sc.Object("box"); apperrors.GetCode(err) != apperrors.CodeObjectNotFound {
		t.Error("failed creation must not leave the object behind")
	}
}

func TestSphereCreateHandlerInlineMaterial(t *testing.T) {
	registry := newTestRegistry(t)
	handler := SphereCreateHandler(registry, NopRecorder{})

	input := SphereCreateInput{
		ObjectID: "ball",
		Radius:   2,
		Material: &MaterialInput{Style: "phong", Color: "crimson"},
	}
	_, _, err := handler(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	sc, _ := registry.Scene("studio")
	node, err := sc.Object("ball")
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if node.Material == nil || node.Material.Style != scene.StylePhong {
		t.Errorf("expected phong material, got %+v", node.Material)
	}
	if node.Material.Color.Token != "crimson" {
		t.Errorf("expected crimson token, got %+v", node.Material.Color)
	}
}

func TestParametricCreateHandlerRangeValidation(t *testing.T) {
	registry := newTestRegistry(t)
	handler := ParametricCreateHandler(registry, NopRecorder{})

	_, _, err := handler(context.Background(), nil, ParametricCreateInput{
		ObjectID: "wave",
		Equation: "sin(u)*cos(v)",
		URange:   []float64{0},
	})
	if err == nil {
		t.Fatal("expected error for malformed u_range")
	}

	_, _, err = handler(context.Background(), nil, ParametricCreateInput{
		ObjectID: "wave",
		Equation: "sin(u)*cos(v)",
		URange:   []float64{0, 6.28},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	sc, _ := registry.Scene("studio")
	node, _ := sc.Object("wave")
	parametric := node.Geometry.Parametric
	if parametric.URange != [2]float64{0, 6.28} {
		t.Errorf("unexpected u range %v", parametric.URange)
	}
	if parametric.USegments != 32 || parametric.VSegments != 32 {
		t.Errorf("expected 32x32 segment defaults, got %dx%d", parametric.USegments, parametric.VSegments)
	}
}

func TestGroupCreateHandler(t *testing.T) {
	registry := newTestRegistry(t)
	handler := GroupCreateHandler(registry, NopRecorder{})

	input := GroupCreateInput{
		ObjectID: "robot",
		Components: []GroupComponentInput{
			{Kind: "cube", Geometry: map[string]any{"width": 2.0}},
			{Kind: "sphere", Transform: &TransformInput{Position: &VecInput{Y: 1.5}}},
		},
	}
	callResult, result, err := handler(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !strings.Contains(resultText(t, callResult), "2 components") {
		t.Errorf("unexpected text %q", resultText(t, callResult))
	}
	if result.Kind != "group" {
		t.Errorf("unexpected kind %q", result.Kind)
	}

	sc, _ := registry.Scene("studio")
	node, _ := sc.Object("robot")
	components := node.Geometry.Group.Components
	if len(components) != 2 || components[0].Kind != scene.KindCube {
		t.Fatalf("unexpected components %+v", components)
	}
	if components[1].Transform == nil || components[1].Transform.Position.Y != 1.5 {
		t.Errorf("component transform not carried over: %+v", components[1].Transform)
	}
}

func TestCameraCreateHandler(t *testing.T) {
	registry := newTestRegistry(t)
	recorder := &fakeRecorder{}
	handler := CameraCreateHandler(registry, recorder)

	fov := 60.0
	_, result, err := handler(context.Background(), nil, CameraCreateInput{
		ObjectID:    "cam",
		Projection:  "perspective",
		FOV:         &fov,
		LookAt:      &VecInput{Z: -1},
		SetAsActive: true,
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.Active {
		t.Error("expected camera to be reported active")
	}

	sc, _ := registry.Scene("studio")
	info := sc.Info(false, false)
	if info.ActiveCameraID != "cam" || info.CameraCount != 1 {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestCameraCreateHandlerInvalidProjection(t *testing.T) {
	registry := newTestRegistry(t)
	handler := CameraCreateHandler(registry, NopRecorder{})

	_, _, err := handler(context.Background(), nil, CameraCreateInput{ObjectID: "cam", Projection: "fisheye"})
	if apperrors.GetCode(err) != apperrors.CodeCameraInvalidKind {
		t.Fatalf("expected camera_invalid_kind, got %v", err)
	}
}

func TestCameraSetActiveHandlerRejectsNonCamera(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "box", Kind: scene.KindCube}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	handler := CameraSetActiveHandler(registry, NopRecorder{})
	_, _, err := handler(context.Background(), nil, CameraSetActiveInput{ObjectID: "box"})
	if apperrors.GetCode(err) != apperrors.CodeCameraNotFound {
		t.Fatalf("expected camera_not_found, got %v", err)
	}
}

func TestSetTransformHandlerPartial(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{
		ID:        "box",
		Kind:      scene.KindCube,
		Transform: scene.Transform{Position: &scene.Vec3{X: 1, Y: 2, Z: 3}},
	}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	handler := SetTransformHandler(registry, NopRecorder{})
	_, _, err := handler(context.Background(), nil, SetTransformInput{
		ObjectID: "box",
		Scale:    &VecInput{X: 2, Y: 2, Z: 2},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	node, _ := sc.Object("box")
	if node.Transform.Position == nil || node.Transform.Position.X != 1 {
		t.Error("position must survive a scale-only update")
	}
	if node.Transform.Scale == nil || node.Transform.Scale.X != 2 {
		t.Errorf("scale not applied: %+v", node.Transform.Scale)
	}
}

func TestMaterialCreateAndApplyHandlers(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "box", Kind: scene.KindCube}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	createHandler := MaterialCreateHandler(registry, NopRecorder{})
	_, _, err := createHandler(context.Background(), nil, MaterialCreateInput{
		MaterialID: "gold",
		Material:   MaterialInput{Style: "physical", Color: []any{1.0, 0.84, 0.0}},
	})
	if err != nil {
		t.Fatalf("material_create: %v", err)
	}

	applyHandler := MaterialApplyHandler(registry, NopRecorder{})
	_, _, err = applyHandler(context.Background(), nil, MaterialApplyInput{ObjectID: "box", MaterialID: "gold"})
	if err != nil {
		t.Fatalf("material_apply: %v", err)
	}

	node, _ := sc.Object("box")
	if node.MaterialRef != "gold" {
		t.Errorf("expected material ref gold, got %q", node.MaterialRef)
	}

	_, _, err = applyHandler(context.Background(), nil, MaterialApplyInput{ObjectID: "box", MaterialID: "silver"})
	if apperrors.GetCode(err) != apperrors.CodeMaterialNotFound {
		t.Fatalf("expected material_not_found, got %v", err)
	}
}

func TestSetParentHandlerRejectsCycle(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "root", Kind: scene.KindGroup}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := sc.AddNode(&scene.Node{ID: "child", Kind: scene.KindCube}, "root"); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	handler := SetParentHandler(registry, NopRecorder{})
	_, _, err := handler(context.Background(), nil, SetParentInput{ObjectID: "root", ParentID: "child"})
	if apperrors.GetCode(err) != apperrors.CodeCyclicParent {
		t.Fatalf("expected cyclic_parent, got %v", err)
	}

	callResult, _, err := handler(context.Background(), nil, SetParentInput{ObjectID: "child"})
	if err != nil {
		t.Fatalf("detach: %v", err)
	}
	if !strings.Contains(resultText(t, callResult), "Detached") {
		t.Errorf("unexpected text %q", resultText(t, callResult))
	}
}

func TestObjectDeleteHandler(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	for _, pair := range [][2]string{{"root", ""}, {"mid", "root"}, {"leaf", "mid"}} {
		if err := sc.AddNode(&scene.Node{ID: pair[0], Kind: scene.KindGroup}, pair[1]); err != nil {
			t.Fatalf("AddNode %s: %v", pair[0], err)
		}
	}

	recorder := &fakeRecorder{}
	handler := ObjectDeleteHandler(registry, recorder)
	// Recursive is the default when omitted.
	_, result, err := handler(context.Background(), nil, ObjectDeleteInput{ObjectID: "mid"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.Recursive {
		t.Errorf("unexpected result %+v", result)
	}
	if _, err := sc.Object("leaf"); apperrors.GetCode(err) != apperrors.CodeObjectNotFound {
		t.Error("recursive delete must remove descendants")
	}
	if recorder.calls[0].tool != "object_delete" || recorder.calls[0].objectID != "mid" {
		t.Errorf("unexpected recorder calls %+v", recorder.calls)
	}
}

func TestObjectDeleteHandlerNonRecursive(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	for _, pair := range [][2]string{{"root", ""}, {"mid", "root"}, {"leaf", "mid"}} {
		if err := sc.AddNode(&scene.Node{ID: pair[0], Kind: scene.KindGroup}, pair[1]); err != nil {
			t.Fatalf("AddNode %s: %v", pair[0], err)
		}
	}

	recursive := false
	handler := ObjectDeleteHandler(registry, NopRecorder{})
	_, result, err := handler(context.Background(), nil, ObjectDeleteInput{ObjectID: "mid", Recursive: &recursive})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Recursive {
		t.Errorf("unexpected result %+v", result)
	}

	leaf, err := sc.Object("leaf")
	if err != nil {
		t.Fatalf("leaf must survive non-recursive delete: %v", err)
	}
	if leaf.ParentID != "root" {
		t.Errorf("leaf should reattach to grandparent, got parent %q", leaf.ParentID)
	}
}

func TestAnimationCreateHandler(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "box", Kind: scene.KindCube}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	handler := AnimationCreateHandler(registry, NopRecorder{})
	_, result, err := handler(context.Background(), nil, AnimationCreateInput{
		AnimationID: "spin",
		TargetID:    "box",
		Property:    "rotation",
		Keyframes: []KeyframeInput{
			{Time: 0, Value: []any{0.0, 0.0, 0.0}},
			{Time: 2, Value: []any{0.0, 6.28, 0.0}, Easing: "ease-in-out"},
		},
		Duration: 2,
		Loop:     true,
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Keyframes != 2 || result.Property != "rotation" {
		t.Fatalf("unexpected result %+v", result)
	}

	_, _, err = handler(context.Background(), nil, AnimationCreateInput{
		AnimationID: "fade",
		TargetID:    "ghost",
		Property:    "opacity",
		Keyframes:   []KeyframeInput{{Time: 0, Value: 1.0}},
	})
	if apperrors.GetCode(err) != apperrors.CodeAnimationTargetNotFound {
		t.Fatalf("expected animation_target_not_found, got %v", err)
	}
}

type fakeSceneStore struct {
	snapshots map[string]scene.Snapshot
}

func newFakeSceneStore() *fakeSceneStore {
	return &fakeSceneStore{snapshots: make(map[string]scene.Snapshot)}
}

func (f *fakeSceneStore) Put(_ context.Context, snapshot scene.Snapshot) error {
	f.snapshots[snapshot.SceneID] = snapshot
	return nil
}

func (f *fakeSceneStore) Get(_ context.Context, sceneID string) (scene.Snapshot, error) {
	snapshot, ok := f.snapshots[sceneID]
	if !ok {
		return scene.Snapshot{}, storage.ErrNotFound
	}
	return snapshot, nil
}

func (f *fakeSceneStore) List(context.Context) ([]storage.SnapshotInfo, error) {
	infos := make([]storage.SnapshotInfo, 0, len(f.snapshots))
	for id, snapshot := range f.snapshots {
		infos = append(infos, storage.SnapshotInfo{
			SceneID:     id,
			ObjectCount: len(snapshot.Objects),
			CameraCount: len(snapshot.CameraIDs),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].SceneID < infos[j].SceneID })
	return infos, nil
}

func (f *fakeSceneStore) Close() error { return nil }

func TestSceneSaveAndLoadHandlers(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "box", Kind: scene.KindCube}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	store := newFakeSceneStore()
	saveHandler := SceneSaveHandler(registry, store, NopRecorder{})
	_, saveResult, err := saveHandler(context.Background(), nil, SceneSaveInput{})
	if err != nil {
		t.Fatalf("scene_save: %v", err)
	}
	if saveResult.SceneID != "studio" || saveResult.ObjectCount != 1 {
		t.Fatalf("unexpected save result %+v", saveResult)
	}

	if err := sc.Delete("box", false); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	loadHandler := SceneLoadHandler(registry, store, NopRecorder{})
	_, loadResult, err := loadHandler(context.Background(), nil, SceneLoadInput{SceneID: "studio"})
	if err != nil {
		t.Fatalf("scene_load: %v", err)
	}
	if loadResult.ObjectCount != 1 {
		t.Fatalf("unexpected load result %+v", loadResult)
	}

	restored, _ := registry.Scene("studio")
	if _, err := restored.Object("box"); err != nil {
		t.Errorf("restored scene missing object: %v", err)
	}

	_, _, err = loadHandler(context.Background(), nil, SceneLoadInput{SceneID: "nowhere"})
	if apperrors.GetCode(err) != apperrors.CodeSnapshotNotFound {
		t.Fatalf("expected snapshot_not_found, got %v", err)
	}
}

func TestSavedScenesResourceHandler(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "box", Kind: scene.KindCube}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	store := newFakeSceneStore()
	saveHandler := SceneSaveHandler(registry, store, NopRecorder{})
	if _, _, err := saveHandler(context.Background(), nil, SceneSaveInput{}); err != nil {
		t.Fatalf("scene_save: %v", err)
	}

	result, err := SavedScenesResourceHandler(store)(context.Background(), nil)
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].URI != "scenes://saved" {
		t.Fatalf("unexpected resource contents %+v", result.Contents)
	}
	text := result.Contents[0].Text
	if !strings.Contains(text, `"studio"`) || !strings.Contains(text, `"objectCount": 1`) {
		t.Fatalf("unexpected payload %q", text)
	}

	_, err = SavedScenesResourceHandler(nil)(context.Background(), nil)
	if apperrors.GetCode(err) != apperrors.CodeStorageUnconfigured {
		t.Fatalf("expected storage_unconfigured without a store, got %v", err)
	}
}

func TestSnapshotHandlersWithoutStore(t *testing.T) {
	registry := newTestRegistry(t)

	saveHandler := SceneSaveHandler(registry, nil, NopRecorder{})
	_, _, err := saveHandler(context.Background(), nil, SceneSaveInput{})
	if apperrors.GetCode(err) != apperrors.CodeStorageUnconfigured {
		t.Fatalf("expected storage_unconfigured on save, got %v", err)
	}

	loadHandler := SceneLoadHandler(registry, nil, NopRecorder{})
	_, _, err = loadHandler(context.Background(), nil, SceneLoadInput{SceneID: "studio"})
	if apperrors.GetCode(err) != apperrors.CodeStorageUnconfigured {
		t.Fatalf("expected storage_unconfigured on load, got %v", err)
	}
}

type fakeAuditStore struct {
	events     []audit.Event
	lastFilter string
	lastSize   int
}

func (f *fakeAuditStore) PutEvent(_ context.Context, event audit.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditStore) ListEvents(_ context.Context, pageSize int, _ string, filter string) (audit.Page, error) {
	f.lastFilter = filter
	f.lastSize = pageSize
	return audit.Page{Events: f.events, NextPageToken: "next"}, nil
}

func (f *fakeAuditStore) Close() error { return nil }

func TestAuditQueryHandler(t *testing.T) {
	store := &fakeAuditStore{events: []audit.Event{{
		ID:        "evt-1",
		Tool:      "object_create_cube",
		SceneID:   "studio",
		ObjectID:  "box",
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}}}

	handler := AuditQueryHandler(store)
	_, result, err := handler(context.Background(), nil, AuditQueryInput{Filter: `tool = "object_create_cube"`})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].Tool != "object_create_cube" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Events[0].CreatedAt != "2026-08-01T12:00:00.000Z" {
		t.Errorf("unexpected timestamp %q", result.Events[0].CreatedAt)
	}
	if result.NextPageToken != "next" {
		t.Errorf("page token not forwarded: %+v", result)
	}
	if store.lastSize != defaultAuditPageSize {
		t.Errorf("expected default page size, got %d", store.lastSize)
	}
	if store.lastFilter != `tool = "object_create_cube"` {
		t.Errorf("filter not forwarded: %q", store.lastFilter)
	}
}

func TestAuditQueryHandlerWithoutStore(t *testing.T) {
	handler := AuditQueryHandler(nil)
	_, _, err := handler(context.Background(), nil, AuditQueryInput{})
	if apperrors.GetCode(err) != apperrors.CodeStorageUnconfigured {
		t.Fatalf("expected storage_unconfigured, got %v", err)
	}
}

func TestSceneInfoHandlerResolvesActiveScene(t *testing.T) {
	registry := newTestRegistry(t)
	sc, _ := registry.Scene("studio")
	if err := sc.AddNode(&scene.Node{ID: "box", Kind: scene.KindCube}, ""); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	handler := SceneInfoHandler(registry)
	_, result, err := handler(context.Background(), nil, SceneInfoInput{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.SceneID != "studio" || result.ObjectCount != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Objects == nil {
		t.Error("objects should be included by default")
	}

	includeObjects := false
	_, result, err = handler(context.Background(), nil, SceneInfoInput{IncludeObjects: &includeObjects})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Objects != nil {
		t.Error("objects should be omitted when include_objects is false")
	}
}
