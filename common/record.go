// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

// RecordType 标识一条 Record 所携带数据的类型 供 exporter 按类型分发至对应 Sinker
//
// 相较于上游的多协议归档场景 respb 的 demo server 只产出一种可归档的数据:
// 已执行完毕的请求/响应 Command 对 其余归档类型 (metrics/traces) 均无来源 故不再声明
type RecordType string

// RecordRoundTrips 已执行的请求/响应 Command 对
const RecordRoundTrips RecordType = "roundtrips"

// Record 是 exporter 处理的最小单位 Data 的实际类型随 RecordType 变化
type Record struct {
	RecordType RecordType
	Data       any
}

func NewRecord(t RecordType, data any) *Record {
	return &Record{RecordType: t, Data: data}
}
