package core

// Directory maps room keys to the connections joined to them.
// It is not safe for concurrent use; the Hub loop owns it.
type Directory struct {
	members map[string][]string
	// order holds live room keys by creation time and drives FindRoomOf.
	order []string
}

// Membership is a copy of one room's member list.
type Membership struct {
	Room    string
	Members []string
}

// NewDirectory constructs an empty room directory.
func NewDirectory() *Directory {
	return &Directory{members: make(map[string][]string)}
}

// Join appends id to the room and returns a copy of the resulting member list.
// Joining twice is not deduplicated.
func (d *Directory) Join(room, id string) []string {
	if _, ok := d.members[room]; !ok {
		d.order = append(d.order, room)
	}
	d.members[room] = append(d.members[room], id)
	return d.Members(room)
}

// Members returns a copy of the room's member list, or nil if the room does not exist.
func (d *Directory) Members(room string) []string {
	ids, ok := d.members[room]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Memberships snapshots every room that contains id, in room creation order.
func (d *Directory) Memberships(id string) []Membership {
	var out []Membership
	for _, room := range d.order {
		if contains(d.members[room], id) {
			out = append(out, Membership{Room: room, Members: d.Members(room)})
		}
	}
	return out
}

// Leave removes every occurrence of id from every room and deletes rooms left
// empty. It returns the keys of the rooms that contained id.
func (d *Directory) Leave(id string) []string {
	affected := make([]string, 0, 1)
	for _, m := range d.Memberships(id) {
		affected = append(affected, m.Room)
		remaining := without(m.Members, id)
		if len(remaining) == 0 {
			d.delete(m.Room)
			continue
		}
		d.members[m.Room] = remaining
	}
	return affected
}

// FindRoomOf returns the oldest live room containing id.
func (d *Directory) FindRoomOf(id string) (string, bool) {
	for _, room := range d.order {
		if contains(d.members[room], id) {
			return room, true
		}
	}
	return "", false
}

// Rooms returns live room keys in creation order.
func (d *Directory) Rooms() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of live rooms.
func (d *Directory) Len() int {
	return len(d.order)
}

func (d *Directory) delete(room string) {
	delete(d.members, room)
	for i, key := range d.order {
		if key == room {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
