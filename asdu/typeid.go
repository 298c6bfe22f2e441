// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"fmt"
)

// TypeID is the ASDU type identification.
type TypeID uint8

// Type identification in the monitor direction.
const (
	// M_SP_NA_1 single-point information
	M_SP_NA_1 TypeID = 1
	// M_SP_TA_1 single-point information with time tag
	M_SP_TA_1 TypeID = 2
	// M_DP_NA_1 double-point information
	M_DP_NA_1 TypeID = 3
	// M_DP_TA_1 double-point information with time tag
	M_DP_TA_1 TypeID = 4
	// M_ST_NA_1 step position information
	M_ST_NA_1 TypeID = 5
	// M_ST_TA_1 step position information with time tag
	M_ST_TA_1 TypeID = 6
	// M_BO_NA_1 bitstring of 32 bits
	M_BO_NA_1 TypeID = 7
	// M_BO_TA_1 bitstring of 32 bits with time tag
	M_BO_TA_1 TypeID = 8
	// M_ME_NA_1 measured value, normalized
	M_ME_NA_1 TypeID = 9
	// M_ME_TA_1 measured value, normalized with time tag
	M_ME_TA_1 TypeID = 10
	// M_ME_NB_1 measured value, scaled
	M_ME_NB_1 TypeID = 11
	// M_ME_TB_1 measured value, scaled with time tag
	M_ME_TB_1 TypeID = 12
	// M_ME_NC_1 measured value, short floating point
	M_ME_NC_1 TypeID = 13
	// M_ME_TC_1 measured value, short floating point with time tag
	M_ME_TC_1 TypeID = 14
	// M_IT_NA_1 integrated totals
	M_IT_NA_1 TypeID = 15
	// M_IT_TA_1 integrated totals with time tag
	M_IT_TA_1 TypeID = 16
	// M_EP_TA_1 event of protection equipment with time tag
	M_EP_TA_1 TypeID = 17
	// M_EP_TB_1 packed start events of protection equipment with time tag
	M_EP_TB_1 TypeID = 18
	// M_EP_TC_1 packed output circuit information of protection equipment
	// with time tag
	M_EP_TC_1 TypeID = 19
	// M_PS_NA_1 packed single-point information with status change detection
	M_PS_NA_1 TypeID = 20
	// M_ME_ND_1 measured value, normalized without quality descriptor
	M_ME_ND_1 TypeID = 21
	// M_SP_TB_1 single-point information with CP56Time2a time tag
	M_SP_TB_1 TypeID = 30
	// M_DP_TB_1 double-point information with CP56Time2a time tag
	M_DP_TB_1 TypeID = 31
	// M_ST_TB_1 step position information with CP56Time2a time tag
	M_ST_TB_1 TypeID = 32
	// M_BO_TB_1 bitstring of 32 bits with CP56Time2a time tag
	M_BO_TB_1 TypeID = 33
	// M_ME_TD_1 measured value, normalized with CP56Time2a time tag
	M_ME_TD_1 TypeID = 34
	// M_ME_TE_1 measured value, scaled with CP56Time2a time tag
	M_ME_TE_1 TypeID = 35
	// M_ME_TF_1 measured value, short floating point with CP56Time2a time tag
	M_ME_TF_1 TypeID = 36
	// M_IT_TB_1 integrated totals with CP56Time2a time tag
	M_IT_TB_1 TypeID = 37
	// M_EP_TD_1 event of protection equipment with CP56Time2a time tag
	M_EP_TD_1 TypeID = 38
	// M_EP_TE_1 packed start events of protection equipment with
	// CP56Time2a time tag
	M_EP_TE_1 TypeID = 39
	// M_EP_TF_1 packed output circuit information of protection equipment
	// with CP56Time2a time tag
	M_EP_TF_1 TypeID = 40
)

// Type identification in the control direction.
const (
	// C_SC_NA_1 single command
	C_SC_NA_1 TypeID = 45
	// C_DC_NA_1 double command
	C_DC_NA_1 TypeID = 46
	// C_RC_NA_1 regulating step command
	C_RC_NA_1 TypeID = 47
	// C_SE_NA_1 set-point command, normalized
	C_SE_NA_1 TypeID = 48
	// C_SE_NB_1 set-point command, scaled
	C_SE_NB_1 TypeID = 49
	// C_SE_NC_1 set-point command, short floating point
	C_SE_NC_1 TypeID = 50
	// C_BO_NA_1 bitstring of 32 bits command
	C_BO_NA_1 TypeID = 51
	// C_SC_TA_1 single command with CP56Time2a time tag
	C_SC_TA_1 TypeID = 58
	// C_DC_TA_1 double command with CP56Time2a time tag
	C_DC_TA_1 TypeID = 59
	// C_RC_TA_1 regulating step command with CP56Time2a time tag
	C_RC_TA_1 TypeID = 60
	// C_SE_TA_1 set-point command, normalized with CP56Time2a time tag
	C_SE_TA_1 TypeID = 61
	// C_SE_TB_1 set-point command, scaled with CP56Time2a time tag
	C_SE_TB_1 TypeID = 62
	// C_SE_TC_1 set-point command, short floating point with CP56Time2a
	// time tag
	C_SE_TC_1 TypeID = 63
	// C_BO_TA_1 bitstring of 32 bits command with CP56Time2a time tag
	C_BO_TA_1 TypeID = 64
)

// Type identification in both directions and for parameters.
const (
	// M_EI_NA_1 end of initialization
	M_EI_NA_1 TypeID = 70
	// C_IC_NA_1 interrogation command
	C_IC_NA_1 TypeID = 100
	// C_CI_NA_1 counter interrogation command
	C_CI_NA_1 TypeID = 101
	// C_RD_NA_1 read command
	C_RD_NA_1 TypeID = 102
	// C_CS_NA_1 clock synchronization command
	C_CS_NA_1 TypeID = 103
	// C_TS_NA_1 test command
	C_TS_NA_1 TypeID = 104
	// C_RP_NA_1 reset process command
	C_RP_NA_1 TypeID = 105
	// C_CD_NA_1 delay acquisition command
	C_CD_NA_1 TypeID = 106
	// C_TS_TA_1 test command with CP56Time2a time tag
	C_TS_TA_1 TypeID = 107
	// P_ME_NA_1 parameter of measured value, normalized
	P_ME_NA_1 TypeID = 110
	// P_ME_NB_1 parameter of measured value, scaled
	P_ME_NB_1 TypeID = 111
	// P_ME_NC_1 parameter of measured value, short floating point
	P_ME_NC_1 TypeID = 112
	// P_AC_NA_1 parameter activation
	P_AC_NA_1 TypeID = 113
)

var typeIDName = map[TypeID]string{
	M_SP_NA_1: "M_SP_NA_1", M_SP_TA_1: "M_SP_TA_1", M_DP_NA_1: "M_DP_NA_1",
	M_DP_TA_1: "M_DP_TA_1", M_ST_NA_1: "M_ST_NA_1", M_ST_TA_1: "M_ST_TA_1",
	M_BO_NA_1: "M_BO_NA_1", M_BO_TA_1: "M_BO_TA_1", M_ME_NA_1: "M_ME_NA_1",
	M_ME_TA_1: "M_ME_TA_1", M_ME_NB_1: "M_ME_NB_1", M_ME_TB_1: "M_ME_TB_1",
	M_ME_NC_1: "M_ME_NC_1", M_ME_TC_1: "M_ME_TC_1", M_IT_NA_1: "M_IT_NA_1",
	M_IT_TA_1: "M_IT_TA_1", M_EP_TA_1: "M_EP_TA_1", M_EP_TB_1: "M_EP_TB_1",
	M_EP_TC_1: "M_EP_TC_1", M_PS_NA_1: "M_PS_NA_1", M_ME_ND_1: "M_ME_ND_1",
	M_SP_TB_1: "M_SP_TB_1", M_DP_TB_1: "M_DP_TB_1", M_ST_TB_1: "M_ST_TB_1",
	M_BO_TB_1: "M_BO_TB_1", M_ME_TD_1: "M_ME_TD_1", M_ME_TE_1: "M_ME_TE_1",
	M_ME_TF_1: "M_ME_TF_1", M_IT_TB_1: "M_IT_TB_1", M_EP_TD_1: "M_EP_TD_1",
	M_EP_TE_1: "M_EP_TE_1", M_EP_TF_1: "M_EP_TF_1",
	C_SC_NA_1: "C_SC_NA_1", C_DC_NA_1: "C_DC_NA_1", C_RC_NA_1: "C_RC_NA_1",
	C_SE_NA_1: "C_SE_NA_1", C_SE_NB_1: "C_SE_NB_1", C_SE_NC_1: "C_SE_NC_1",
	C_BO_NA_1: "C_BO_NA_1", C_SC_TA_1: "C_SC_TA_1", C_DC_TA_1: "C_DC_TA_1",
	C_RC_TA_1: "C_RC_TA_1", C_SE_TA_1: "C_SE_TA_1", C_SE_TB_1: "C_SE_TB_1",
	C_SE_TC_1: "C_SE_TC_1", C_BO_TA_1: "C_BO_TA_1",
	M_EI_NA_1: "M_EI_NA_1",
	C_IC_NA_1: "C_IC_NA_1", C_CI_NA_1: "C_CI_NA_1", C_RD_NA_1: "C_RD_NA_1",
	C_CS_NA_1: "C_CS_NA_1", C_TS_NA_1: "C_TS_NA_1", C_RP_NA_1: "C_RP_NA_1",
	C_CD_NA_1: "C_CD_NA_1", C_TS_TA_1: "C_TS_TA_1",
	P_ME_NA_1: "P_ME_NA_1", P_ME_NB_1: "P_ME_NB_1", P_ME_NC_1: "P_ME_NC_1",
	P_AC_NA_1: "P_AC_NA_1",
}

func (sf TypeID) String() string {
	if name, ok := typeIDName[sf]; ok {
		return name
	}
	return fmt.Sprintf("TypeID(%d)", uint8(sf))
}
