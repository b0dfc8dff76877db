package conn

// Packet ids for protocol revision 772 (client 1.21.7/8), one table per
// connection state: the ids are compile-time constants and differ per
// state. Kept as a single file so a protocol bump
// only touches this table.

// Serverbound handshake.
const (
	packetIntention int32 = 0x00
)

// Serverbound status.
const (
	packetStatusRequest int32 = 0x00
	packetPingRequest    int32 = 0x01
)

// Clientbound status.
const (
	packetStatusResponse int32 = 0x00
	packetPongResponse    int32 = 0x01
)

// Serverbound login.
const (
	packetHelloServerbound int32 = 0x00
	packetKey              int32 = 0x01
	packetLoginAcknowledged int32 = 0x03
)

// Clientbound login.
const (
	packetLoginDisconnect int32 = 0x00
	packetHelloClientbound int32 = 0x01
	packetLoginFinished     int32 = 0x02
)

// Serverbound/clientbound configuration (shared id space per direction).
const (
	packetClientInformationServerbound int32 = 0x00
	packetCustomPayloadServerbound      int32 = 0x02
	packetFinishConfigurationServerbound int32 = 0x03
	packetSelectKnownPacksServerbound   int32 = 0x07

	packetCustomPayloadClientbound     int32 = 0x01
	packetDisconnectConfiguration      int32 = 0x02
	packetFinishConfigurationClientbound int32 = 0x03
	packetRegistryDataClientbound      int32 = 0x07
	packetUpdateTagsClientbound        int32 = 0x0D
	packetUpdateEnabledFeatures        int32 = 0x0C
	packetSelectKnownPacksClientbound  int32 = 0x0E
	packetCustomReportDetails          int32 = 0x0A
	packetServerLinks                  int32 = 0x10
)

// Serverbound play.
const (
	packetConfirmTeleportation int32 = 0x00
	packetChatServerbound      int32 = 0x06
	packetChatCommand          int32 = 0x05
	packetClientInformationPlay int32 = 0x0B
	packetCustomPayloadPlay    int32 = 0x0D
	packetKeepAliveServerbound int32 = 0x1A
	packetMovePlayerPos        int32 = 0x1C
	packetMovePlayerPosRot     int32 = 0x1D
	packetMovePlayerRot        int32 = 0x1E
	packetMovePlayerStatusOnly int32 = 0x1F
	packetPlayerAction         int32 = 0x23
	packetPlayerCommand        int32 = 0x25
	packetPlayerAbilities      int32 = 0x24
	packetPingRequestPlay      int32 = 0x27
	packetSetCarriedItem       int32 = 0x2D
	packetSetCreativeModeSlot int32 = 0x32
	packetSwing                int32 = 0x38
	packetUseItemOn            int32 = 0x39
	packetUseItem              int32 = 0x3A
)

// Clientbound play.
const (
	packetBlockChangedAck  int32 = 0x05
	packetBlockUpdate      int32 = 0x09
	packetDisconnectPlay   int32 = 0x1D
	packetKeepAliveClientbound int32 = 0x26
	packetLoginPlay        int32 = 0x2B
	packetGameEvent        int32 = 0x22
	packetPlayerPosition   int32 = 0x41
	packetRespawn          int32 = 0x45
	packetSetChunkCacheCenter int32 = 0x57
	packetLevelChunkWithLight int32 = 0x27
	packetAddEntity        int32 = 0x01
	packetRemoveEntities   int32 = 0x47
	packetAnimate          int32 = 0x03
	packetPlayerInfoUpdate int32 = 0x3F
	packetPlayerInfoRemove int32 = 0x3E
	packetSetEntityData    int32 = 0x56
	packetTeleportEntity   int32 = 0x1F
	packetRotateHead       int32 = 0x4B
	packetPongResponsePlay int32 = 0x3C
	packetSystemChat       int32 = 0x6C
	packetPlayerChatMessage int32 = 0x3A
)

const (
	brandName         = "quasar"
	coreVersionString = "1.21.7"
	protocolVersion   = 772
)
