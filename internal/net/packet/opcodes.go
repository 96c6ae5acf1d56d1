package packet

// Client → server opcodes.
const (
	C_OPCODE_LOGIN      byte = 1 // name S, password S
	C_OPCODE_WALK       byte = 2 // flags C (bit 0 = run), count C, count × (x H, y H)
	C_OPCODE_TOGGLE_RUN byte = 3 // on C
	C_OPCODE_LOGOUT     byte = 4
	C_OPCODE_TELEPORT   byte = 5 // x H, y H
)

// Server → client opcodes.
const (
	S_OPCODE_LOGIN_RESULT   byte = 1 // code C
	S_OPCODE_CLIENT_SETTING byte = 2 // id H, value D
	S_OPCODE_RUN_ENERGY     byte = 3 // energy C
	S_OPCODE_MAP_REGION     byte = 4 // sector x H, sector y H
	S_OPCODE_MESSAGE        byte = 5 // text S
	S_OPCODE_MOVE           byte = 6 // entity D, x H, y H, primary C, secondary C (0xFF = none)
)

// Login result codes.
const (
	LoginOK          byte = 0
	LoginBadPassword byte = 1
	LoginAlreadyOn   byte = 2
	LoginBanned      byte = 3
	LoginServerError byte = 4
)
