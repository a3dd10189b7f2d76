// Package errors provides structured error handling for scene operations.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Scene registry errors
	CodeSceneNotFound      Code = "SCENE_NOT_FOUND"
	CodeSceneAlreadyExists Code = "SCENE_ALREADY_EXISTS"
	CodeSceneIDEmpty       Code = "SCENE_ID_EMPTY"
	CodeNoActiveScene      Code = "NO_ACTIVE_SCENE"

	// Object errors
	CodeObjectNotFound Code = "OBJECT_NOT_FOUND"
	CodeObjectIDEmpty  Code = "OBJECT_ID_EMPTY"
	CodeParentNotFound Code = "PARENT_NOT_FOUND"
	CodeCyclicParent   Code = "CYCLIC_PARENT"

	// Camera errors
	CodeCameraNotFound    Code = "CAMERA_NOT_FOUND"
	CodeCameraInvalidKind Code = "CAMERA_INVALID_KIND"

	// Material errors
	CodeMaterialNotFound Code = "MATERIAL_NOT_FOUND"
	CodeMaterialIDEmpty  Code = "MATERIAL_ID_EMPTY"

	// Animation errors
	CodeAnimationTargetNotFound   Code = "ANIMATION_TARGET_NOT_FOUND"
	CodeAnimationIDEmpty          Code = "ANIMATION_ID_EMPTY"
	CodeAnimationInvalidProperty  Code = "ANIMATION_INVALID_PROPERTY"
	CodeAnimationKeyframesMissing Code = "ANIMATION_KEYFRAMES_MISSING"

	// Storage errors
	CodeSnapshotNotFound    Code = "SNAPSHOT_NOT_FOUND"
	CodeStorageUnconfigured Code = "STORAGE_UNCONFIGURED"
)
