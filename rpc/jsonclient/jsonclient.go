// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient 实现 jsonrpc 1.0 的 http 客户端
package jsonclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/33cn/rps/types"
	"github.com/pkg/errors"
)

// JSONClient a object of jsonclient
type JSONClient struct {
	url      string
	prefix   string
	user     string
	password string
	client   *http.Client
}

// NewJSONClient produce a json object, 方法默认前缀为 Node
func NewJSONClient(url string) (*JSONClient, error) {
	return New("Node", url)
}

// New produce a jsonclient by perfix and url
func New(prefix, url string) (*JSONClient, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{
		url:    url,
		prefix: prefix,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// SetBasicAuth 设置 basic auth
func (client *JSONClient) SetBasicAuth(user, password string) {
	client.user = user
	client.password = password
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

func addPrefix(prefix, name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return prefix + "." + name
}

// Call jsonclinet call method
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	method = addPrefix(client.prefix, method)
	req := &clientRequest{}
	req.Method = method
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	httpreq, err := http.NewRequest(http.MethodPost, client.url, bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	httpreq.Header.Set("Content-Type", "application/json")
	if client.user != "" || client.password != "" {
		httpreq.SetBasicAuth(client.user, client.password)
	}
	postresp, err := client.client.Do(httpreq)
	if err != nil {
		return errors.Wrapf(err, "post %s", client.url)
	}
	defer postresp.Body.Close()
	b, err := io.ReadAll(postresp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	cresp := &clientResponse{}
	err = json.Unmarshal(b, &cresp)
	if err != nil {
		return errors.Wrapf(err, "decode response %q", string(b))
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return fmt.Errorf("invalid error %v", cresp.Error)
		}
		if x == "" {
			x = "unspecified error"
		}
		return errors.New(x)
	}
	if cresp.Result == nil {
		return types.ErrEmpty
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(*cresp.Result, resp)
}
