package healthcheckservice

import (
	"time"

	"github.com/aler9/gortsplib"
	"github.com/aler9/gortsplib/pkg/base"
	"github.com/aler9/gortsplib/pkg/url"

	"github.com/rtsp-agents/cameras-backend/internal/domain/constants"
)

// RTSPProber classifies a camera stream by dialing its RTSP endpoint and
// issuing OPTIONS followed by DESCRIBE.
type RTSPProber struct {
	timeout time.Duration
}

func NewRTSPProber(timeout time.Duration) *RTSPProber {
	return &RTSPProber{timeout: timeout}
}

func (p *RTSPProber) Probe(rtspURL string) string {
	u, err := url.Parse(rtspURL)
	if err != nil {
		return constants.StatusUnconnected
	}

	conn := gortsplib.Client{
		ReadTimeout:  p.timeout,
		WriteTimeout: p.timeout,
	}

	if err := conn.Start(u.Scheme, u.Host); err != nil {
		return constants.StatusUnconnected
	}
	defer conn.Close()

	if _, err := conn.Options(u); err != nil {
		return constants.StatusUnconnected
	}

	_, _, res, err := conn.Describe(u)

	return ClassifyDescribe(res, err)
}

// ClassifyDescribe maps the outcome of a DESCRIBE exchange onto the
// camera status vocabulary.
func ClassifyDescribe(res *base.Response, err error) string {
	if err == nil {
		return constants.StatusOpen
	}

	if res != nil {
		switch res.StatusCode {
		case base.StatusUnauthorized:
			return constants.StatusUnauthorized
		case base.StatusNotFound:
			return constants.StatusNotFound
		}
	}

	return constants.StatusUnconnected
}
