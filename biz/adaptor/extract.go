package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"essay-assess/biz/application/dto/basic"
	"essay-assess/biz/infrastructure/config"
	"essay-assess/biz/infrastructure/util"
	"essay-assess/biz/infrastructure/util/log"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/golang-jwt/jwt/v4"
)

const (
	hertzContext = "hertz_context"
	userMetaKey  = "user_meta"
)

// InjectUserMeta 把已解析的身份信息放进ctx，内部调用时跳过token解析
func InjectUserMeta(ctx context.Context, meta *basic.UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey, meta)
}

func InjectContext(ctx context.Context, c *app.RequestContext) context.Context {
	return context.WithValue(ctx, hertzContext, c)
}

func ExtractContext(ctx context.Context) (*app.RequestContext, error) {
	c, ok := ctx.Value(hertzContext).(*app.RequestContext)
	if !ok {
		return nil, errors.New("hertz context not found")
	}
	return c, nil
}

// ExtractUserMeta 从Authorization头解析身份信息
// token由宿主平台签发，写作端带itemKey，批改端带correctorKey或复核/裁决标记
func ExtractUserMeta(ctx context.Context) (user *basic.UserMeta) {
	if meta, ok := ctx.Value(userMetaKey).(*basic.UserMeta); ok {
		return meta
	}
	user = new(basic.UserMeta)
	var err error
	defer func() {
		if err != nil {
			log.CtxInfo(ctx, "extract user meta fail, err=%v", err)
		}
	}()
	c, err := ExtractContext(ctx)
	if err != nil {
		return
	}
	tokenString := c.GetHeader("Authorization")
	token, err := jwt.Parse(string(tokenString), func(_ *jwt.Token) (interface{}, error) {
		return jwt.ParseECPublicKeyFromPEM([]byte(config.GetConfig().Auth.PublicKey))
	})
	if err != nil {
		return
	}
	if !token.Valid {
		err = errors.New("token is not valid")
		return
	}
	data, err := json.Marshal(token.Claims)
	if err != nil {
		return
	}
	err = json.Unmarshal(data, user)
	if err != nil {
		return
	}
	log.CtxInfo(ctx, "userMeta=%s", util.JSONF(user))
	return
}

// GenerateJwtToken 生成jwt，宿主平台同步数据时换取
/*
生成 ECDSA 私钥: openssl ecparam -genkey -name prime256v1 -noout -out private_key.pem
从私钥中提取公钥: openssl ec -in private_key.pem -pubout -out public_key.pem
*/
func GenerateJwtToken(meta *basic.UserMeta) (string, int64, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(config.GetConfig().Auth.SecretKey))
	if err != nil {
		return "", 0, err
	}
	iat := time.Now().Unix()
	exp := iat + config.GetConfig().Auth.AccessExpire
	claims := make(jwt.MapClaims)
	claims["exp"] = exp
	claims["iat"] = iat
	claims["userId"] = meta.UserId
	claims["taskKey"] = meta.TaskKey
	claims["itemKey"] = meta.ItemKey
	claims["correctorKey"] = meta.CorrectorKey
	claims["isReview"] = meta.IsReview
	claims["isStitchDecision"] = meta.IsStitchDecision
	token := jwt.New(jwt.SigningMethodES256)
	token.Claims = claims
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", 0, err
	}
	return tokenString, exp, nil
}
