package domain

import "fmt"

// Room identifiers are plain strings: "playdate:<id>" for a playdate's
// group chat and "direct:<lo>:<hi>" for a 1:1 conversation. The direct
// form orders the two user ids so both ends derive the same room.

func PlaydateRoom(playdateID uint) string {
	return fmt.Sprintf("playdate:%d", playdateID)
}

func DirectRoom(userA, userB uint) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("direct:%d:%d", userA, userB)
}
