package scene

import (
	apperrors "github.com/lbruel/sceneforge/internal/platform/errors"
)

// SetParent moves a node under a new parent, or detaches it when parentID is
// empty. The target parent must exist, and assigning a node as parent of its
// own ancestor (or itself) is rejected with a CYCLIC_PARENT error before any
// mutation.
func (s *Scene) SetParent(objectID, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.objects[objectID]
	if !ok {
		return s.objectNotFound(objectID)
	}

	var parent *Node
	if parentID != "" {
		parent, ok = s.objects[parentID]
		if !ok {
			return apperrors.WithMetadata(apperrors.CodeParentNotFound,
				"parent \""+parentID+"\" not found in scene \""+s.id+"\"",
				map[string]string{"scene_id": s.id, "object_id": parentID})
		}
		if parentID == objectID || s.isAncestorLocked(objectID, parentID) {
			return apperrors.WithMetadata(apperrors.CodeCyclicParent,
				"cannot set \""+parentID+"\" as parent of its own ancestor \""+objectID+"\"",
				map[string]string{"scene_id": s.id, "object_id": objectID, "parent_id": parentID})
		}
	}

	if node.ParentID != "" {
		if current, ok := s.objects[node.ParentID]; ok {
			current.detachChild(objectID)
		}
	}
	if parent != nil {
		parent.attachChild(objectID)
		node.ParentID = parentID
	} else {
		node.ParentID = ""
	}
	return nil
}

// isAncestorLocked reports whether ancestorID is an ancestor of nodeID,
// walking parent links from nodeID toward the root.
func (s *Scene) isAncestorLocked(ancestorID, nodeID string) bool {
	seen := make(map[string]struct{})
	for nodeID != "" {
		if _, ok := seen[nodeID]; ok {
			return false
		}
		seen[nodeID] = struct{}{}
		node, ok := s.objects[nodeID]
		if !ok {
			return false
		}
		if node.ParentID == ancestorID {
			return true
		}
		nodeID = node.ParentID
	}
	return false
}

// Delete removes a node from the scene.
//
// With recursive true the node and every transitive descendant are removed
// depth-first. With recursive false only the node itself is removed and its
// direct children are reparented to the node's former parent (or detached
// entirely when the node had none); deeper descendants are unaffected.
//
// Materials and animations referencing the deleted node are left in place
// and become inert. A deleted camera is also removed from the camera
// mapping, and the active-camera pointer is cleared if it pointed at it.
func (s *Scene) Delete(objectID string, recursive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.objects[objectID]
	if !ok {
		return s.objectNotFound(objectID)
	}
	s.deleteLocked(node, recursive)
	return nil
}

func (s *Scene) deleteLocked(node *Node, recursive bool) {
	if node.ParentID != "" {
		if parent, ok := s.objects[node.ParentID]; ok {
			parent.detachChild(node.ID)
		}
	}

	if recursive {
		s.deleteSubtreeLocked(node)
		return
	}

	// Children are visited over a snapshot of the list since reparenting
	// mutates it through attachChild on the grandparent.
	grandparentID := node.ParentID
	children := append([]string(nil), node.ChildIDs...)
	for _, childID := range children {
		child, ok := s.objects[childID]
		if !ok {
			continue
		}
		child.ParentID = grandparentID
		if grandparentID != "" {
			if grandparent, ok := s.objects[grandparentID]; ok {
				grandparent.attachChild(childID)
			}
		}
	}
	s.removeEntryLocked(node.ID)
}

// deleteSubtreeLocked removes node and all descendants depth-first over a
// snapshot of each child list.
func (s *Scene) deleteSubtreeLocked(node *Node) {
	children := append([]string(nil), node.ChildIDs...)
	for _, childID := range children {
		if child, ok := s.objects[childID]; ok {
			s.deleteSubtreeLocked(child)
		}
	}
	s.removeEntryLocked(node.ID)
}

// removeEntryLocked drops a node from the object mapping and, for cameras,
// from the camera mapping and the active-camera pointer.
func (s *Scene) removeEntryLocked(objectID string) {
	delete(s.objects, objectID)
	if _, ok := s.cameras[objectID]; ok {
		delete(s.cameras, objectID)
		if s.activeCameraID == objectID {
			s.activeCameraID = ""
		}
	}
}
