package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"authapp/internal/apperror"
	"authapp/internal/domain/model"
	"authapp/internal/repository"
	"authapp/internal/token"
)

// claims⇔署名付き文字列の変換を約束（実装はinternal/token）
type TokenCodec interface {
	Encode(claims token.Claims, ttl time.Duration) (string, time.Time, error)
	Decode(tokenString string) (token.Claims, error)
}

// サインアップ入力の形チェックを約束（実装はinternal/validator）
type AuthValidator interface {
	ValidateSignup(ctx context.Context, in SignupInput) error
}

type SignupInput struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeat_password"`
}

// API返却用のユーザー公開ビュー（パスワード系は絶対に含めない）
type UserDTO struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// 発行結果。RefreshExpiresAtはhandlerがCookieの期限に使う。
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthUsecaseはtokenライフサイクルの本体。
// 発行・検証・ローテーション・失効をCodecとStore越しに組み立てる。
// セッション状態は一切キャッシュしない（revokedの古い見え方で動かないため毎回読み直す）。
type AuthUsecase struct {
	codec     TokenCodec
	hasher    PasswordHasher
	validator AuthValidator
	users     repository.UserRepository
	sessions  repository.RefreshSessionRepository
	tx        repository.TransactionManager

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// DIコンストラクタ
func NewAuthUsecase(
	codec TokenCodec,
	hasher PasswordHasher,
	validator AuthValidator,
	users repository.UserRepository,
	sessions repository.RefreshSessionRepository,
	tx repository.TransactionManager,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		codec:      codec,
		hasher:     hasher,
		validator:  validator,
		users:      users,
		sessions:   sessions,
		tx:         tx,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// model.UserをAPI返却用DTOに変換
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		UserID:   u.UserID,
		FullName: u.FullName,
		Email:    u.Email,
	}
}

// Signupはユーザーを新規作成する。
// user_idはemailからuuid5で導出（同じemailは常に同じID。email uniqueの帰結としてID unique）。
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*UserDTO, error) {
	// 形チェック（password≠repeat_passwordはストレージに触る前に弾く）
	if err := u.validator.ValidateSignup(ctx, in); err != nil {
		return nil, err
	}

	// email重複チェック
	existing, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrUserAlreadyExists
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:         uuid.NewSHA1(uuid.NameSpaceX500, []byte(in.Email)).String(),
		FullName:       in.FullName,
		Email:          in.Email,
		HashedPassword: hashed,
		Disabled:       false,
		Role:           model.RoleUser,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// チェックとの間に割り込まれてもunique制約で拾う
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.ErrUserAlreadyExists
		}
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// Authenticateはemailとパスワードでユーザーを認証する。
// emailなしとパスワード違いで同じエラーを返す（どちらで落ちたかは漏らさない）。
func (u *AuthUsecase) Authenticate(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrIncorrectCredentials
		}
		return nil, err
	}

	if !u.hasher.Verify(password, user.HashedPassword) {
		return nil, apperror.ErrIncorrectCredentials
	}

	return user, nil
}

// IssueTokenPairはaccess/refreshのペアを発行してセッション行を保存する。
// revoke→device upsert→insertは1トランザクション。
// これで(user, device)ごとにrevoked=falseの行が常に最大1つになる。
func (u *AuthUsecase) IssueTokenPair(ctx context.Context, userID string, dev model.UserDevice) (*TokenPair, error) {
	// access tokenはsubだけ（jtiなし。永続化もしない）
	accessToken, _, err := u.codec.Encode(token.Claims{Subject: userID}, u.accessTTL)
	if err != nil {
		return nil, err
	}

	// refresh tokenはjti+device_idを持つ
	jti := uuid.NewString()
	refreshToken, refreshExp, err := u.codec.Encode(token.Claims{
		Subject:  userID,
		JTI:      jti,
		DeviceID: dev.DeviceID,
	}, u.refreshTTL)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		// 同じ(user, device)の旧セッションを先に失効
		if err := r.RefreshSessions().RevokeAllForUserDevice(ctx, userID, dev.DeviceID); err != nil {
			return err
		}
		// 端末は指紋で冪等upsert
		if err := r.Devices().EnsureExists(ctx, &dev); err != nil {
			return err
		}
		// 新しいセッション行を挿入
		return r.RefreshSessions().Create(ctx, &model.RefreshSession{
			JTI:       jti,
			UserID:    userID,
			DeviceID:  dev.DeviceID,
			ExpiresAt: refreshExp,
		})
	})
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ValidateRefreshTokenはrefresh tokenを検証してsubject（user_id）を返す。
// チェックは順序固定。最初に落ちた時点の型付きエラーで返す。
// 署名が正しくてもストア側でrevokedなら拒否する（これがリプレイ対策の本体）。
func (u *AuthUsecase) ValidateRefreshToken(ctx context.Context, refreshToken string, dev model.UserDevice) (string, error) {
	// 1. 署名と構造
	claims, err := u.codec.Decode(refreshToken)
	if err != nil {
		return "", err
	}

	// 2. jti必須（なければaccess tokenか壊れたもの）
	if claims.JTI == "" {
		return "", apperror.ErrTokenValidation
	}

	// 3. 期限
	if !claims.ExpiresAt.After(time.Now()) {
		return "", apperror.ErrSessionExpired
	}

	// 4. 発行時の端末と一致するか（盗まれたtokenの別端末リプレイを防ぐ）
	//    ストアを見るより先に弾く
	if claims.DeviceID != dev.DeviceID {
		return "", apperror.ErrTokenValidation
	}

	// 5. セッション行の存在
	sess, err := u.sessions.FindByJTI(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", apperror.ErrTokenValidation
		}
		return "", err
	}

	// 6. revoked
	if sess.Revoked {
		return "", apperror.ErrTokenValidation
	}

	return claims.Subject, nil
}

// RotateTokenPairは提示されたrefresh tokenを検証して新しいペアに差し替える。
// 旧セッションはIssueTokenPair内のrevokeで失効する（ログインと同じ経路）。
func (u *AuthUsecase) RotateTokenPair(ctx context.Context, refreshToken string, dev model.UserDevice) (*TokenPair, error) {
	userID, err := u.ValidateRefreshToken(ctx, refreshToken, dev)
	if err != nil {
		return nil, err
	}

	// ユーザーがまだ存在して有効かを再確認
	user, err := u.users.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrInvalidToken
		}
		return nil, err
	}
	if user.Disabled {
		return nil, apperror.ErrUserInactive
	}

	return u.IssueTokenPair(ctx, user.UserID, dev)
}

// ValidateAccessTokenAndResolveUserはAuthorizationヘッダを検証してユーザーを返す。
// access token経路の失敗はすべてErrAuthentication。
// ストアは見ない（access tokenはstatelessで自然期限まで信用する）。
func (u *AuthUsecase) ValidateAccessTokenAndResolveUser(ctx context.Context, authorizationHeader string) (*model.User, error) {
	// 1. ヘッダとBearerスキーム
	if authorizationHeader == "" {
		return nil, apperror.ErrAuthentication
	}
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, apperror.ErrAuthentication
	}

	// 2. 署名と構造
	claims, err := u.codec.Decode(parts[1])
	if err != nil {
		return nil, apperror.ErrAuthentication
	}

	// 3. jtiがあったらそれはrefresh token（種別はjtiの有無だけで区別）
	if claims.JTI != "" {
		return nil, apperror.ErrAuthentication
	}

	// 4. 期限
	if !claims.ExpiresAt.After(time.Now()) {
		return nil, apperror.ErrAuthentication
	}

	// 5. subのユーザーが存在するか
	user, err := u.users.FindByUserID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrAuthentication
		}
		return nil, err
	}

	return user, nil
}

// CurrentUserは有効なユーザーの公開ビューを返す。無効化済みなら403。
func (u *AuthUsecase) CurrentUser(user *model.User) (*UserDTO, error) {
	if user.Disabled {
		return nil, apperror.ErrUserInactive
	}
	dto := toUserDTO(user)
	return &dto, nil
}

// RevokeSessionsは(user, device)のセッションをすべて失効する（ログアウト）。
// すでに全部revoked済みでも成功（冪等）。
func (u *AuthUsecase) RevokeSessions(ctx context.Context, userID string, deviceID string) error {
	return u.sessions.RevokeAllForUserDevice(ctx, userID, deviceID)
}
