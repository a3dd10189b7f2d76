package service

import (
	"github.com/lbruel/sceneforge/internal/audit"
	"github.com/lbruel/sceneforge/internal/mcp/domain"
	"github.com/lbruel/sceneforge/internal/scene"
	"github.com/lbruel/sceneforge/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerSceneTools registers scene lifecycle and persistence tools.
func registerSceneTools(server *mcp.Server, registry *scene.Registry, store storage.SceneStore, recorder domain.Recorder) {
	mcp.AddTool(server, domain.SceneCreateTool(), domain.SceneCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.SceneSetActiveTool(), domain.SceneSetActiveHandler(registry, recorder))
	mcp.AddTool(server, domain.SceneInfoTool(), domain.SceneInfoHandler(registry))
	mcp.AddTool(server, domain.SceneSaveTool(), domain.SceneSaveHandler(registry, store, recorder))
	mcp.AddTool(server, domain.SceneLoadTool(), domain.SceneLoadHandler(registry, store, recorder))
}

// registerObjectTools registers object creation, hierarchy, and camera tools.
func registerObjectTools(server *mcp.Server, registry *scene.Registry, recorder domain.Recorder) {
	mcp.AddTool(server, domain.CubeCreateTool(), domain.CubeCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.SphereCreateTool(), domain.SphereCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.CylinderCreateTool(), domain.CylinderCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.PlaneCreateTool(), domain.PlaneCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.ModelCreateTool(), domain.ModelCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.ParametricCreateTool(), domain.ParametricCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.GroupCreateTool(), domain.GroupCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.CameraCreateTool(), domain.CameraCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.CameraSetActiveTool(), domain.CameraSetActiveHandler(registry, recorder))
	mcp.AddTool(server, domain.SetTransformTool(), domain.SetTransformHandler(registry, recorder))
	mcp.AddTool(server, domain.SetParentTool(), domain.SetParentHandler(registry, recorder))
	mcp.AddTool(server, domain.ObjectDeleteTool(), domain.ObjectDeleteHandler(registry, recorder))
}

// registerMaterialTools registers material library and assignment tools.
func registerMaterialTools(server *mcp.Server, registry *scene.Registry, recorder domain.Recorder) {
	mcp.AddTool(server, domain.SetMaterialTool(), domain.SetMaterialHandler(registry, recorder))
	mcp.AddTool(server, domain.MaterialCreateTool(), domain.MaterialCreateHandler(registry, recorder))
	mcp.AddTool(server, domain.MaterialApplyTool(), domain.MaterialApplyHandler(registry, recorder))
}

// registerAnimationTools registers animation declaration tools.
func registerAnimationTools(server *mcp.Server, registry *scene.Registry, recorder domain.Recorder) {
	mcp.AddTool(server, domain.AnimationCreateTool(), domain.AnimationCreateHandler(registry, recorder))
}

// registerAuditTools registers the mutation journal query tool.
func registerAuditTools(server *mcp.Server, store audit.Store) {
	mcp.AddTool(server, domain.AuditQueryTool(), domain.AuditQueryHandler(store))
}

// registerResources registers readable scene MCP resources.
func registerResources(server *mcp.Server, registry *scene.Registry, store storage.SceneStore) {
	server.AddResource(domain.SceneListResource(), domain.SceneListResourceHandler(registry))
	server.AddResource(domain.ActiveSceneResource(), domain.ActiveSceneResourceHandler(registry))
	if store != nil {
		server.AddResource(domain.SavedScenesResource(), domain.SavedScenesResourceHandler(store))
	}
}
