package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	// 注册 webp 解码器，封面图允许 webp。
	_ "golang.org/x/image/webp"
)

const maxUploadBytes = 5 * 1024 * 1024

// UploadImage 处理图片上传请求，文件名使用 uuid 保证唯一。
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	if file.Size > maxUploadBytes {
		respondError(c, http.StatusBadRequest, "File size should be less than 5MB")
		return
	}

	// 以能否解出图片头为准，不信任客户端声明的 Content-Type。
	src, err := file.Open()
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	_, _, decodeErr := image.DecodeConfig(src)
	src.Close()
	if decodeErr != nil {
		respondError(c, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		a.respondServiceError(c, err)
		return
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.cfg.UploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url": fmt.Sprintf("%s/%s", a.cfg.UploadURLPath, newFilename),
	})
}
