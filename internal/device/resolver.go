package device

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"authapp/internal/apperror"
	"authapp/internal/domain/model"
)

// ResolveはUser-AgentとIPから決定的なdevice指紋を導出する。
// uuid5（名前空間UUID）なので同じ入力は必ず同じ指紋になり、
// 同じ端末からの再ログインが1つのセッション枠を使い回す。
func Resolve(userAgent string, ipAddress string) (model.UserDevice, error) {
	if userAgent == "" || ipAddress == "" {
		return model.UserDevice{}, apperror.ErrMissingDeviceContext
	}

	// uuid.NewSHA1はversion 5のUUIDを返す
	id := uuid.NewSHA1(uuid.NameSpaceX500, []byte(userAgent+ipAddress))

	return model.UserDevice{
		DeviceID:  id.String(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}, nil
}

// FromEchoはリクエストから端末情報を取り出してResolveする。
func FromEcho(c echo.Context) (model.UserDevice, error) {
	return Resolve(c.Request().UserAgent(), c.RealIP())
}
