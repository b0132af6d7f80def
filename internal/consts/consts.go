package consts

const (
	ApplicationName    = "Resto Doc Server"
	ApplicationVersion = "v1.3.0"
)

// UntitledRoomName 未指定房间时图片归入的默认房间名。
// (name, project_id) 作为自然键避免重复创建。
const UntitledRoomName = "Untitled Room"
