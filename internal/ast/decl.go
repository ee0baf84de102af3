package ast

import (
	"storyscript/internal/source"
	"storyscript/internal/token"
)

type DeclKind uint8

const (
	DeclRoom DeclKind = iota + 1
	DeclItem
)

func (k DeclKind) String() string {
	switch k {
	case DeclRoom:
		return "Room"
	case DeclItem:
		return "Item"
	default:
		return "Decl(?)"
	}
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

// Property is a `name: value;` pair inside a room or item body.
type Property struct {
	Name  token.Token
	Value ExprID
}

// Event is a `when <name> { ... }` handler inside a room.
type Event struct {
	Name token.Token
	Body StmtID // StmtBlock
}

type DeclRoomData struct {
	Name   token.Token
	Props  []Property
	Items  []DeclID // DeclItem
	Events []Event
}

type DeclItemData struct {
	Name  token.Token
	Props []Property
}

// Decls manages allocation of story declarations.
type Decls struct {
	Arena *Arena[Decl]
	Rooms *Arena[DeclRoomData]
	Items *Arena[DeclItemData]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Decls{
		Arena: NewArena[Decl](capHint),
		Rooms: NewArena[DeclRoomData](capHint),
		Items: NewArena[DeclItemData](capHint),
	}
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) new(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (d *Decls) NewRoom(span source.Span, name token.Token, props []Property, items []DeclID, events []Event) DeclID {
	payload := d.Rooms.Allocate(DeclRoomData{
		Name:   name,
		Props:  append([]Property(nil), props...),
		Items:  append([]DeclID(nil), items...),
		Events: append([]Event(nil), events...),
	})
	return d.new(DeclRoom, span, payload)
}

func (d *Decls) Room(id DeclID) (*DeclRoomData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclRoom {
		return nil, false
	}
	return d.Rooms.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewItem(span source.Span, name token.Token, props []Property) DeclID {
	payload := d.Items.Allocate(DeclItemData{
		Name:  name,
		Props: append([]Property(nil), props...),
	})
	return d.new(DeclItem, span, payload)
}

func (d *Decls) Item(id DeclID) (*DeclItemData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclItem {
		return nil, false
	}
	return d.Items.Get(uint32(decl.Payload)), true
}
