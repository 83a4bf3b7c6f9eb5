package jsonedit

// Reorder moves the node at sourceID to the position of targetID among
// their shared parent's children. Array items are spliced out and
// re-inserted at the target's index; object members are rebuilt in the new
// key order. Ids with different parents, or a node dropped on itself,
// leave the document unchanged.
func Reorder(doc Value, sourceID, targetID NodeID) (Value, error) {
	if sourceID == targetID || sourceID.IsRoot() || targetID.IsRoot() {
		return doc, nil
	}
	srcParent, ok := ParentID(sourceID)
	if !ok {
		return doc, nil
	}
	if tgtParent, ok := ParentID(targetID); !ok || tgtParent != srcParent {
		return doc, nil
	}

	next := doc.Clone()
	parent, srcKey, err := locateParent(&next, sourceID)
	if err != nil {
		return Value{}, err
	}
	_, tgtKey, err := locateParent(&next, targetID)
	if err != nil {
		return Value{}, err
	}

	switch parent.Type {
	case TypeArray:
		from, _ := arrayIndex(srcKey, len(parent.items))
		to, _ := arrayIndex(tgtKey, len(parent.items))
		moved := parent.items[from]
		parent.removeItem(from)
		parent.insertItems(to, moved)
	case TypeObject:
		from := parent.indexOfKey(srcKey)
		to := parent.indexOfKey(tgtKey)
		moved := parent.members[from]
		order := make([]Member, 0, len(parent.members))
		order = append(order, parent.members[:from]...)
		order = append(order, parent.members[from+1:]...)
		rebuilt := make([]Member, 0, len(parent.members))
		rebuilt = append(rebuilt, order[:to]...)
		rebuilt = append(rebuilt, moved)
		rebuilt = append(rebuilt, order[to:]...)
		parent.members = rebuilt
	}
	return next, nil
}
