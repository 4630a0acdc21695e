package media

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/h2non/filetype"
	"github.com/rs/xid"
	"gorm.io/gorm"

	"scraper.local/instagram-curator/common"
	models "scraper.local/instagram-curator/models/media"
)

type AvatarsRepository struct {
	Db *gorm.DB
}

func (r *AvatarsRepository) IsExists(url string, urlSha1 string) bool {
	var avatar *models.Avatar
	if err := r.Db.Where("url_sha1=? AND url=?", urlSha1, url).Take(&avatar).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	return true
}

// Download mirrors a profile avatar into local storage, deduplicated by
// content hash.
func (r *AvatarsRepository) Download(accountID string, url string, urlSha1 string) (err error) {
	tr := &http.Transport{
		DisableKeepAlives: true,
	}
	session := &net.Dialer{}
	tr.DialContext = session.DialContext

	httpClient := &http.Client{
		Transport: tr,
		Timeout:   time.Duration(30) * time.Second,
	}

	req, _ := http.NewRequest("GET", url, nil)
	resp, err := httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.New(
			fmt.Sprintf(
				"request error: status[%s] code[%d]",
				resp.Status,
				resp.StatusCode,
			),
		)
		return
	}

	tmppath := fmt.Sprintf(
		"%s/.cache/%d/%d",
		common.GetEnvString("SCRAPER_STORAGE_PATH"),
		rand.Intn(50),
		rand.Intn(50),
	)
	err = os.MkdirAll(
		tmppath,
		os.ModePerm,
	)
	if err != nil {
		return
	}

	tmpfile := fmt.Sprintf(
		"%s/%s.download",
		tmppath,
		xid.New().String(),
	)
	dst, err := os.Create(tmpfile)
	if err != nil {
		return
	}
	defer os.Remove(tmpfile)
	defer dst.Close()

	hash := sha1.New()
	t := io.TeeReader(resp.Body, hash)
	_, err = io.Copy(dst, t)
	if err != nil {
		return
	}

	head := make([]byte, 261)
	if _, err = dst.ReadAt(head, 0); err != nil {
		return
	}

	kind, _ := filetype.Image(head)
	if kind == filetype.Unknown {
		err = errors.New("unknow filetype")
		return
	}

	info, err := dst.Stat()
	if err != nil {
		return
	}

	filehash := hex.EncodeToString(hash.Sum(nil))
	crc32q := crc32.MakeTable(0xD5828281)
	i := crc32.Checksum([]byte(filehash), crc32q)
	localpath := fmt.Sprintf(
		"%s/avatars/%d/%d",
		common.GetEnvString("SCRAPER_STORAGE_PATH"),
		i/233%50,
		i/89%50,
	)
	err = os.MkdirAll(localpath, os.ModePerm)
	if err != nil {
		return
	}
	localfile := fmt.Sprintf(
		"%s/%s.%s",
		localpath,
		filehash,
		kind.Extension,
	)

	var avatar *models.Avatar
	if err := r.Db.Where("url_sha1=? AND url=?", urlSha1, url).Take(&avatar).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		avatar = &models.Avatar{
			ID:        xid.New().String(),
			AccountID: accountID,
			Url:       url,
			UrlSha1:   urlSha1,
			Mime:      kind.MIME.Value,
			Size:      info.Size(),
			Node:      common.GetEnvInt("SCRAPER_STORAGE_NODE"),
			Filehash:  filehash,
			Extension: kind.Extension,
			Timestamp: time.Now().UnixMilli(),
			Status:    1,
		}
		r.Db.Create(&avatar)
		os.Rename(tmpfile, localfile)
	}

	return
}
